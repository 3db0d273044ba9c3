package orchestration

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/sandbox-teardown/internal/metrics"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Total number of orchestration API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of orchestration API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"operation"},
	)
)

func init() {
	metrics.Registry.MustRegister(apiCallsTotal, apiLatency)
}

// recordAPICall records the outcome and latency of one API call.
func recordAPICall(operation string, err error, latency time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	apiCallsTotal.WithLabelValues(operation, result).Inc()
	apiLatency.WithLabelValues(operation).Observe(latency.Seconds())
}
