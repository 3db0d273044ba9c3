package teardown

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/sandbox-teardown/internal/metrics"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "runs_total",
			Help:      "Total number of teardown runs by result",
		},
		[]string{"result"},
	)

	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of teardown phases in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~7m
		},
		[]string{"phase"},
	)

	resourceActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "resource_actions_total",
			Help:      "Total number of per-resource teardown decisions by action",
		},
		[]string{"action"},
	)
)

func init() {
	metrics.Registry.MustRegister(runsTotal, phaseDuration, resourceActionsTotal)
}

func recordRun(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	runsTotal.WithLabelValues(result).Inc()
}

func recordPhase(phase string, duration time.Duration) {
	phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

func recordAction(a action) {
	resourceActionsTotal.WithLabelValues(string(a)).Inc()
}
