package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineStagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fantasydash_pipeline_stages_total",
			Help: "Pipeline stage outcomes by stage and result",
		},
		[]string{"stage", "outcome"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fantasydash_fetch_duration_seconds",
			Help:    "Latency of upstream league fetches in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReportWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fantasydash_report_writes_total",
			Help: "HTML report writes by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordStage counts one pipeline stage outcome.
func RecordStage(stage string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	PipelineStagesTotal.WithLabelValues(stage, outcome).Inc()
}
