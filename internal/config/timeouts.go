package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
//
// Environment Variables:
//   - SANDBOX_TIMEOUT_API_REQUEST (default: 5m)
//   - SANDBOX_TIMEOUT_RUN (default: 0, no deadline)
//   - SANDBOX_TIMEOUT_ARTIFACT_PURGE (default: 10m)
//   - SANDBOX_TIMEOUT_METRICS_PUSH (default: 10s)
type Timeouts struct {
	APIRequest    time.Duration `env:"TIMEOUT_API_REQUEST, default=5m"`     // Timeout for a single orchestration API request
	Run           time.Duration `env:"TIMEOUT_RUN, default=0s"`             // Deadline for the whole teardown; zero waits indefinitely
	ArtifactPurge time.Duration `env:"TIMEOUT_ARTIFACT_PURGE, default=10m"` // Timeout for the artifact purge phase
	MetricsPush   time.Duration `env:"TIMEOUT_METRICS_PUSH, default=10s"`   // Timeout for pushing metrics at the end of a run
}

// LoadTimeouts loads timeout configuration from the process environment.
func LoadTimeouts(ctx context.Context) (*Timeouts, error) {
	return LoadTimeoutsFrom(ctx, envconfig.OsLookuper())
}

// LoadTimeoutsFrom loads timeout configuration from the SANDBOX_-prefixed
// variables found by lookuper. Unset variables take their default; a value
// that is not a duration or is negative is an error.
func LoadTimeoutsFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Timeouts, error) {
	t := &Timeouts{}
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   t,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read timeouts: %w", err)
	}

	for name, d := range map[string]time.Duration{
		"TIMEOUT_API_REQUEST":    t.APIRequest,
		"TIMEOUT_RUN":            t.Run,
		"TIMEOUT_ARTIFACT_PURGE": t.ArtifactPurge,
		"TIMEOUT_METRICS_PUSH":   t.MetricsPush,
	} {
		if d < 0 {
			return nil, fmt.Errorf("%s%s must not be negative, got %s", EnvPrefix, name, d)
		}
	}
	return t, nil
}
