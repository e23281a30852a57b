package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/voxpop/internal/logging"
	"github.com/cognicore/voxpop/pkg/voxpop/config"
	"github.com/cognicore/voxpop/pkg/voxpop/dashboard"
	"github.com/cognicore/voxpop/pkg/voxpop/filter"
	"github.com/cognicore/voxpop/pkg/voxpop/loader"
	"github.com/cognicore/voxpop/pkg/voxpop/textmine"
)

// report is the JSON output: the dashboard snapshot plus optional stoplist
// suggestions.
type report struct {
	*dashboard.Snapshot
	StopwordCandidates []textmine.DocFrequency `json:"stopword_candidates,omitempty"`
}

// filterFlags collects repeated --filter values.
type filterFlags []string

func (f *filterFlags) String() string     { return strings.Join(*f, " ") }
func (f *filterFlags) Set(v string) error { *f = append(*f, v); return nil }

func main() {
	var (
		input    = flag.String("input", "", "Path to CSV/TSV/XLSX/SQLite review file (required)")
		profile  = flag.String("profile", "", "Optional: YAML dashboard profile")
		preset   = flag.String("preset", config.PresetReviews, "Built-in profile when --profile is not set ("+strings.Join(config.PresetNames(), ", ")+")")
		format   = flag.String("format", "json", "Output format: json or text")
		lang     = flag.String("lang", "en", "Number formatting language for text output")
		logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		highDF   = flag.Float64("high-df", 0, "Optional: suggest stopwords found in at least this percent of reviews")
		dfLimit  = flag.Int("high-df-limit", 20, "Maximum stopword suggestions")
		filters  filterFlags
	)
	flag.Var(&filters, "filter", "Filter as dim=v1,v2 (repeatable); dim= selects nothing")
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *format != "json" && *format != "text" {
		log.Fatalf("--format must be json or text, got %q", *format)
	}
	logger := logging.Init(*logLevel, "text")

	var (
		prof *config.Profile
		err  error
	)
	if *profile != "" {
		prof, err = config.LoadProfile(*profile)
	} else {
		prof, err = config.Preset(*preset)
	}
	if err != nil {
		log.Fatalf("load profile: %v", err)
	}

	sel, err := filter.Parse(filters)
	if err != nil {
		log.Fatalf("parse filters: %v", err)
	}
	if len(filters) == 0 {
		sel = nil
	}

	ds, err := loader.Load(context.Background(), *input, loader.Options{
		Columns: prof.Columns,
		Sheet:   prof.Source.Sheet,
		Table:   prof.Source.Table,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("load reviews: %v", err)
	}
	logger.Info("dataset loaded", "rows", ds.Len(), "columns", ds.Columns(), "mapping", prof.Mapping())

	pipeline, err := dashboard.NewPipeline(prof)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}
	logger.Debug("pipeline ready", "profile", prof.Name, "stopwords", pipeline.Stoplist().Len())
	snap, err := pipeline.Run(ds, sel)
	if err != nil {
		log.Fatalf("run dashboard: %v", err)
	}

	out := report{Snapshot: snap}
	if *highDF > 0 {
		counter := textmine.CountTokens(filter.Apply(ds, sel), config.ColumnText, nil,
			textmine.NewNormalizer(textmine.NewStoplist(nil), prof.Text.StripMarkup))
		// Words the profile already drops are not worth suggesting.
		for _, c := range counter.HighDF(*highDF, 0) {
			if pipeline.Stoplist().Contains(c.Token) {
				continue
			}
			if *dfLimit > 0 && len(out.StopwordCandidates) == *dfLimit {
				break
			}
			out.StopwordCandidates = append(out.StopwordCandidates, c)
		}
	}

	if *format == "text" {
		if err := dashboard.WriteText(os.Stdout, snap, dashboard.TextOptions{Lang: *lang}); err != nil {
			log.Fatalf("write report: %v", err)
		}
		for _, c := range out.StopwordCandidates {
			fmt.Printf("stopword candidate: %s (%.1f%% of reviews)\n", c.Token, c.DFPercent)
		}
		return
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(data))
}
