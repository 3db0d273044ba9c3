package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultDomain, cfg.API.Domain)
	assert.Equal(t, DefaultPowerOffCommand, cfg.Teardown.PowerOffCommand)
	assert.Equal(t, DefaultPowerOffTag, cfg.Teardown.PowerOffTag)
	assert.Equal(t, DefaultArtifactsRegion, cfg.Artifacts.Region)
	assert.Equal(t, DefaultMetricsJob, cfg.Metrics.Job)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, 0, cfg.Teardown.Workers, "zero workers means one per CPU")
}

func TestApplyDefaults_PreservesExisting(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		API:      APIConfig{Domain: "Labs"},
		Teardown: TeardownConfig{PowerOffCommand: "Shutdown", PowerOffTag: "vm"},
		Log:      LogConfig{Level: "debug", Format: "json"},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "Labs", cfg.API.Domain)
	assert.Equal(t, "Shutdown", cfg.Teardown.PowerOffCommand)
	assert.Equal(t, "vm", cfg.Teardown.PowerOffTag)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}
