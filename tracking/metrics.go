package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pathUpdatesTotal counts reported path updates by status
	pathUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmatch_path_updates_total",
		Help: "Total path updates by status",
	}, []string{"status"})

	// staleFeedsTotal counts feeds ignored for not being newer than the last one
	staleFeedsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mapmatch_stale_feeds_total",
		Help: "Total feeds ignored as stale",
	})

	// ingestDuration tracks the time to match every vehicle of a feed
	ingestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapmatch_ingest_duration_seconds",
		Help:    "Feed ingest duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	})

	// traceLength tracks the number of observations matched per vehicle
	traceLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapmatch_trace_length",
		Help:    "Observations per matched vehicle trace",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})
)
