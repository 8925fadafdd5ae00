// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation requests served, by source",
		},
		[]string{"source"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_errors_total",
			Help: "Total number of catalog store query errors",
		},
		[]string{"backend", "query_kind"},
	)

	CandidatesFetched = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "candidates_fetched",
			Help:    "Number of candidate vehicles fetched per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"query_kind"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommendation_pipeline_duration_seconds",
			Help: "Duration of the full recommendation pipeline in seconds",
		},
		[]string{"source"},
	)

	AffinityCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_cache_requests_total",
			Help: "Brand affinity cache lookups, by outcome",
		},
		[]string{"outcome"},
	)
)
