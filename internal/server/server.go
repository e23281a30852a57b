package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cognicore/voxpop/internal/logging"
	"github.com/cognicore/voxpop/internal/metrics"
	"github.com/cognicore/voxpop/pkg/voxpop/dashboard"
	"github.com/cognicore/voxpop/pkg/voxpop/filter"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// Server exposes the dashboard pipeline over HTTP.
type Server struct {
	pipeline *dashboard.Pipeline
	handle   *dashboard.Handle
	logger   *slog.Logger
	timeout  time.Duration
}

// New creates a server. timeout bounds each dashboard request; zero means
// no bound beyond the client's own.
func New(pipeline *dashboard.Pipeline, handle *dashboard.Handle, logger *slog.Logger, timeout time.Duration) *Server {
	return &Server{
		pipeline: pipeline,
		handle:   handle,
		logger:   logging.Component(logger, "server"),
		timeout:  timeout,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/dashboard", s.dashboard)
		r.Get("/filters", s.filters)
		r.Post("/reload", s.reload)
	})
	return r
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	ds, err := s.handle.Dataset(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sel, err := SelectionFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	snap, err := s.pipeline.Run(ds, sel)
	if err != nil {
		metrics.ObserveRun(0, time.Since(start), err)
		s.fail(w, r, err)
		return
	}
	metrics.ObserveRun(snap.KPIs.TotalReviews, time.Since(start), nil)

	s.logger.DebugContext(ctx, "dashboard computed",
		slog.String("request_id", middleware.GetReqID(ctx)),
		slog.String("snapshot", snap.ID),
		slog.Int("rows", snap.KPIs.TotalReviews),
	)
	render.JSON(w, r, snap)
}

type filtersResponse struct {
	Profile string                    `json:"profile"`
	Filters []dashboard.FilterControl `json:"filters"`
}

func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	ds, err := s.handle.Dataset(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, filtersResponse{
		Profile: s.pipeline.Profile().Name,
		Filters: s.pipeline.Filters(ds),
	})
}

type reloadResponse struct {
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	ds, err := s.handle.Reload(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.InfoContext(ctx, "dataset reloaded", slog.Int("rows", ds.Len()))
	render.JSON(w, r, reloadResponse{Rows: ds.Len(), LoadedAt: s.handle.LoadedAt()})
}

type healthResponse struct {
	Status   string     `json:"status"`
	Loaded   bool       `json:"loaded"`
	Rows     int        `json:"rows"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if ds := s.handle.Current(); ds != nil {
		at := s.handle.LoadedAt()
		resp.Loaded = true
		resp.Rows = ds.Len()
		resp.LoadedAt = &at
	}
	render.JSON(w, r, resp)
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.timeout)
}

// SelectionFromQuery reads a filter selection from query parameters. Each
// key is a dimension; values may repeat or be comma separated. A key whose
// only value is empty ("sentiment=") selects nothing for that dimension.
func SelectionFromQuery(q url.Values) (filter.Selection, error) {
	if len(q) == 0 {
		return nil, nil
	}
	sel := make(filter.Selection, len(q))
	for dim, raw := range q {
		if strings.TrimSpace(dim) == "" {
			return nil, fmt.Errorf("empty filter dimension: %w", internalerr.ErrInvalidInput)
		}
		var vals []string
		for _, r := range raw {
			for _, v := range strings.Split(r, ",") {
				if v = strings.TrimSpace(v); v != "" {
					vals = append(vals, v)
				}
			}
		}
		sel.Set(dim, vals...)
	}
	return sel, nil
}

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (e *errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.Code)
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internalerr.ErrUnknownFilter), errors.Is(err, internalerr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusServiceUnavailable
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	s.logger.WarnContext(r.Context(), "request failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.String("error", err.Error()),
	)
	_ = render.Render(w, r, &errorResponse{Error: err.Error(), Code: code})
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
