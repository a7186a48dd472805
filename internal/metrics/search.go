package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "search_requests_total",
			Help:      "Total number of natural-language searches",
		},
		[]string{"approach"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notedex",
			Name:      "search_duration_seconds",
			Help:      "Search pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"approach"},
	)

	FeatureCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "feature_cache_total",
			Help:      "Note feature cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SimilarityRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "similarity_requests_total",
			Help:      "Total embedding similarity requests",
		},
		[]string{"status"}, // "success" / "error"
	)
)

// RegisterSearchMetrics registers the search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(FeatureCacheTotal)
	prometheus.MustRegister(SimilarityRequestsTotal)
}
