// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	return c.validateSecurity()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// Reload interval bounds
const (
	minReloadInterval = time.Minute
	minWatchDebounce  = 100 * time.Millisecond
)

// validateData validates the data source and reload settings
func (c *Config) validateData() error {
	switch strings.ToLower(c.Data.Loader) {
	case "csv", "duckdb":
	default:
		return fmt.Errorf("DATA_LOADER must be csv or duckdb, got %q", c.Data.Loader)
	}

	if strings.TrimSpace(c.Data.CatalogPath) == "" {
		return fmt.Errorf("DATA_CATALOG_PATH is required")
	}

	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("DATA_RELOAD_INTERVAL must be non-negative, got %v", c.Data.ReloadInterval)
	}
	if c.Data.ReloadInterval > 0 && c.Data.ReloadInterval < minReloadInterval {
		return fmt.Errorf("DATA_RELOAD_INTERVAL must be 0 (disabled) or at least %v, got %v", minReloadInterval, c.Data.ReloadInterval)
	}
	if c.Data.MinReloadGap < 0 {
		return fmt.Errorf("DATA_MIN_RELOAD_GAP must be non-negative, got %v", c.Data.MinReloadGap)
	}
	// Interval reloads are throttled like any other, so a shorter interval would drop them
	if c.Data.ReloadInterval > 0 && c.Data.ReloadInterval < c.Data.MinReloadGap {
		return fmt.Errorf("DATA_RELOAD_INTERVAL (%v) must not be shorter than DATA_MIN_RELOAD_GAP (%v)", c.Data.ReloadInterval, c.Data.MinReloadGap)
	}
	if c.Data.Watch && c.Data.WatchDebounce < minWatchDebounce {
		return fmt.Errorf("DATA_WATCH_DEBOUNCE must be at least %v when DATA_WATCH is enabled, got %v", minWatchDebounce, c.Data.WatchDebounce)
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects wildcard CORS in production when admin reload is exposed.
func (c *Config) validateCORS() error {
	if c.Security.AdminReloadEnabled && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production while ADMIN_RELOAD_ENABLED=true. " +
			"Either set specific origins: CORS_ORIGINS=https://yourdomain.com " +
			"or disable the reload endpoint with ADMIN_RELOAD_ENABLED=false")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AdminReloadEnabled && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if err := c.validateRateLimitRequests(); err != nil {
		return err
	}
	return c.validateRateLimitWindow()
}

// validateRateLimitRequests validates the rate limit requests value
func (c *Config) validateRateLimitRequests() error {
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	return nil
}

// validateRateLimitWindow validates the rate limit window value
func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}
