// Package config defines the configuration of a teardown run.
//
// Configuration is layered: an optional YAML file is read first, then
// SANDBOX_-prefixed environment variables override it, then command-line
// flags override both. Defaults are applied last so that every layer can
// leave a value unset. Timeouts are read from the environment only, the
// way the run's surrounding automation passes them.
package config
