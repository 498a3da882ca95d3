package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// responseCacheHits counts rendered responses served from the cache
	responseCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmatch_response_cache_hits_total",
		Help: "Total API responses served from the response cache",
	}, []string{"format"})

	// responseCacheMisses counts responses rendered on request
	responseCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmatch_response_cache_misses_total",
		Help: "Total API responses rendered on a cache miss",
	}, []string{"format"})

	// publishedVehicles tracks the number of vehicles the server holds
	publishedVehicles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapmatch_published_vehicles",
		Help: "Vehicles with a published path entry",
	})
)
