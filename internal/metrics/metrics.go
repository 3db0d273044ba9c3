// Package metrics holds the Prometheus registry shared by the teardown
// packages and pushes it to a Pushgateway at the end of a run.
//
// A teardown is a short-lived batch job, so nothing is scraped: collectors
// register with [Registry] in their package init and the CLI calls [Push]
// once the run has finished.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Namespace prefixes every metric name.
const Namespace = "sandbox_teardown"

// Registry is the registry all teardown collectors register with.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

// Push sends the current state of Registry to the Pushgateway at url,
// grouped by job and reservation.
func Push(ctx context.Context, url, job, reservationID string) error {
	if url == "" {
		return nil
	}

	pusher := push.New(url, job).
		Gatherer(Registry).
		Grouping("reservation", reservationID)

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
