package config

// Config holds the teardown configuration.
type Config struct {
	// ReservationID identifies the reservation to tear down.
	ReservationID string `yaml:"reservation_id" env:"RESERVATION_ID, overwrite"`

	API       APIConfig       `yaml:"api" env:", prefix=API_"`
	Teardown  TeardownConfig  `yaml:"teardown" env:", prefix=TEARDOWN_"`
	Artifacts ArtifactsConfig `yaml:"artifacts" env:", prefix=ARTIFACTS_"`
	Metrics   MetricsConfig   `yaml:"metrics" env:", prefix=METRICS_"`
	Log       LogConfig       `yaml:"log" env:", prefix=LOG_"`
}

// APIConfig configures the orchestration API connection.
type APIConfig struct {
	URL                string `yaml:"url" env:"URL, overwrite"`
	Token              string `yaml:"token" env:"TOKEN, overwrite"`
	Domain             string `yaml:"domain" env:"DOMAIN, overwrite"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" env:"INSECURE_SKIP_VERIFY, overwrite"`
}

// TeardownConfig controls teardown behavior.
type TeardownConfig struct {
	// Workers bounds the number of resources handled in parallel.
	// Zero means one worker per usable CPU.
	Workers int `yaml:"workers" env:"WORKERS, overwrite"`
	// DryRun logs every mutating API call instead of sending it.
	DryRun bool `yaml:"dry_run" env:"DRY_RUN, overwrite"`
	// PowerOffCommand and PowerOffTag name the connected command used to
	// power off resources that are kept.
	PowerOffCommand string `yaml:"power_off_command" env:"POWER_OFF_COMMAND, overwrite"`
	PowerOffTag     string `yaml:"power_off_tag" env:"POWER_OFF_TAG, overwrite"`
}

// ArtifactsConfig configures the optional purge of reservation artifacts
// from S3-compatible object storage.
type ArtifactsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ENABLED, overwrite"`
	Bucket    string `yaml:"bucket" env:"BUCKET, overwrite"`
	Prefix    string `yaml:"prefix" env:"PREFIX, overwrite"` // Object keys are <prefix><reservation id>/...
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT, overwrite"`
	Region    string `yaml:"region" env:"REGION, overwrite"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY, overwrite"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY, overwrite"`
}

// MetricsConfig configures pushing run metrics to a Prometheus Pushgateway.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" env:"PUSHGATEWAY_URL, overwrite"`
	Job            string `yaml:"job" env:"JOB, overwrite"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL, overwrite"`
	Format string `yaml:"format" env:"FORMAT, overwrite"`
}

// Default values.
const (
	DefaultDomain          = "Global"
	DefaultPowerOffCommand = "PowerOff"
	DefaultPowerOffTag     = "power"
	DefaultArtifactsRegion = "us-east-1"
	DefaultMetricsJob      = "sandbox_teardown"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "auto"
)

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.API.Domain == "" {
		c.API.Domain = DefaultDomain
	}
	if c.Teardown.PowerOffCommand == "" {
		c.Teardown.PowerOffCommand = DefaultPowerOffCommand
	}
	if c.Teardown.PowerOffTag == "" {
		c.Teardown.PowerOffTag = DefaultPowerOffTag
	}
	if c.Artifacts.Region == "" {
		c.Artifacts.Region = DefaultArtifactsRegion
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = DefaultMetricsJob
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
