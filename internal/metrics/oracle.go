package metrics

import "github.com/prometheus/client_golang/prometheus"

// Oracle Prometheus metrics.
var (
	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medkb",
			Name:      "oracle_requests_total",
			Help:      "Total number of oracle requests",
		},
		[]string{"capability", "status"}, // capability: embed/events/text
	)

	OracleRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medkb",
			Name:      "oracle_request_duration_seconds",
			Help:      "Oracle request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"capability"},
	)

	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medkb",
			Name:      "fallback_total",
			Help:      "Deterministic fallback activations by capability",
		},
		[]string{"capability"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medkb",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	OracleBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "medkb",
			Name:      "oracle_budget_tokens_remaining",
			Help:      "Estimated oracle tokens left in the budget window (-1 = unlimited)",
		},
		[]string{"window"}, // "daily" / "monthly"
	)
)

var oracleMetricsRegistered bool

// RegisterOracleMetrics registers Prometheus oracle metrics. Must be called once from main.
func RegisterOracleMetrics() {
	if oracleMetricsRegistered {
		return
	}
	prometheus.MustRegister(OracleRequestsTotal)
	prometheus.MustRegister(OracleRequestDuration)
	prometheus.MustRegister(FallbackTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(OracleBudgetTokensRemaining)
	oracleMetricsRegistered = true
}
