package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var validLogFormats = map[string]bool{
	"auto":    true,
	"console": true,
	"json":    true,
}

// Validate checks the configuration and returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ReservationID) == "" {
		errs = append(errs, errors.New("reservation_id is required"))
	}

	if err := c.validateAPI(); err != nil {
		errs = append(errs, fmt.Errorf("api: %w", err))
	}

	if c.Teardown.Workers < 0 {
		errs = append(errs, fmt.Errorf("teardown.workers must not be negative, got %d", c.Teardown.Workers))
	}

	if c.Artifacts.Enabled {
		if err := c.validateArtifacts(); err != nil {
			errs = append(errs, fmt.Errorf("artifacts: %w", err))
		}
	}

	if c.Metrics.PushgatewayURL != "" {
		if err := validateURL(c.Metrics.PushgatewayURL); err != nil {
			errs = append(errs, fmt.Errorf("metrics.pushgateway_url: %w", err))
		}
	}

	if c.Log.Format != "" && !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format must be one of auto, console, json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c *Config) validateAPI() error {
	if c.API.URL == "" {
		return errors.New("url is required")
	}
	if err := validateURL(c.API.URL); err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if c.API.Token == "" {
		return errors.New("token is required")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	var errs []error
	if c.Artifacts.Bucket == "" {
		errs = append(errs, errors.New("bucket is required when enabled"))
	}
	if c.Artifacts.Endpoint != "" {
		if err := validateURL(c.Artifacts.Endpoint); err != nil {
			errs = append(errs, fmt.Errorf("endpoint: %w", err))
		}
	}
	if (c.Artifacts.AccessKey == "") != (c.Artifacts.SecretKey == "") {
		errs = append(errs, errors.New("access_key and secret_key must be set together"))
	}
	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}
