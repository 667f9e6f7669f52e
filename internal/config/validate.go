package config

import (
	"errors"
	"fmt"

	"favsync/internal/services"
)

// Validate ensures the configuration is usable. Failures are tagged with
// services.ErrConfiguration so callers can distinguish bad settings from
// runtime faults.
func (c *Config) Validate() error {
	checks := []func() error{
		c.validatePaths,
		c.validateSource,
		c.validateScan,
		c.validateNotifications,
		c.validateLogging,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.ProfileDir == "" && c.Source.FavoritesPath == "" && len(c.Source.ExtraPaths) == 0 {
		return errors.New("source.profile_dir or source.favorites_path must be set")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.LockTimeout <= 0 {
		return errors.New("scan.lock_timeout must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
