package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cognicore/voxpop/internal/logging"
	"github.com/cognicore/voxpop/internal/metrics"
	"github.com/cognicore/voxpop/internal/server"
	"github.com/cognicore/voxpop/internal/settings"
	"github.com/cognicore/voxpop/pkg/voxpop/dashboard"
)

func main() {
	cfg, err := settings.Load()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.DataPath, "data", cfg.DataPath, "Path to the review file")
	flag.StringVar(&cfg.ProfilePath, "profile", cfg.ProfilePath, "Optional: YAML dashboard profile")
	flag.StringVar(&cfg.Preset, "preset", cfg.Preset, "Built-in profile when --profile is not set")
	preload := flag.Bool("preload", true, "Load the dataset before serving")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("settings: %v", err)
	}
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	profile, err := cfg.Profile()
	if err != nil {
		log.Fatalf("load profile: %v", err)
	}
	pipeline, err := dashboard.NewPipeline(profile)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}
	handle := dashboard.NewHandle(
		dashboard.FileLoader(cfg.DataPath, profile, logging.Component(logger, "loader")),
		dashboard.WithLoadHook(metrics.ObserveLoad),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *preload {
		ds, err := handle.Dataset(ctx)
		if err != nil {
			log.Fatalf("load reviews: %v", err)
		}
		logger.Info("dataset loaded", "path", cfg.DataPath, "rows", ds.Len(), "profile", profile.Name)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(pipeline, handle, logger, cfg.RequestTimeout).Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
