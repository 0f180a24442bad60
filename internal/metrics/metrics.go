package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRenders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snowday_page_renders_total",
			Help: "Total number of host page renders",
		},
	)

	PredictionLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowday_prediction_loads_total",
			Help: "Prediction resource loads by outcome",
		},
		[]string{"outcome"},
	)

	PredictionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snowday_prediction_runs_total",
			Help: "Snow-day pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	PredictionRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snowday_prediction_run_duration_seconds",
			Help:    "Duration of a snow-day pipeline run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		},
	)

	RefreshRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snowday_refresh_rejected_total",
			Help: "Refresh requests rejected by the rate limiter",
		},
	)
)
