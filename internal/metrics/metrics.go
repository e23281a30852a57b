package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
)

// Dataset metrics
var (
	// DatasetLoadsTotal counts dataset loads by status (ok/error).
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxpop_dataset_loads_total",
			Help: "Dataset loads by status",
		},
		[]string{"status"},
	)

	// DatasetLoadDuration tracks how long a load takes.
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxpop_dataset_load_duration_seconds",
			Help:    "Dataset load duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// DatasetRows is the row count of the current dataset.
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voxpop_dataset_rows",
			Help: "Rows in the loaded dataset",
		},
	)
)

// Pipeline metrics
var (
	// PipelineRunsTotal counts dashboard pipeline runs by status.
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxpop_pipeline_runs_total",
			Help: "Dashboard pipeline runs by status",
		},
		[]string{"status"},
	)

	// PipelineDuration tracks one filter-and-aggregate pass.
	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxpop_pipeline_duration_seconds",
			Help:    "Dashboard pipeline duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// FilteredRows is the row count after the most recent filter pass.
	FilteredRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voxpop_filtered_rows",
			Help: "Rows selected by the most recent filter pass",
		},
	)
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts API requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxpop_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxpop_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// ObserveLoad records one dataset load attempt. Its signature matches
// dashboard.LoadHook.
func ObserveLoad(ds *dataset.Dataset, took time.Duration, err error) {
	DatasetLoadDuration.Observe(took.Seconds())
	if err != nil {
		DatasetLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues("ok").Inc()
	DatasetRows.Set(float64(ds.Len()))
}

// ObserveRun records one pipeline run.
func ObserveRun(filtered int, took time.Duration, err error) {
	PipelineDuration.Observe(took.Seconds())
	if err != nil {
		PipelineRunsTotal.WithLabelValues("error").Inc()
		return
	}
	PipelineRunsTotal.WithLabelValues("ok").Inc()
	FilteredRows.Set(float64(filtered))
}
