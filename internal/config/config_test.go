// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/movieai/internal/dataset"
	"github.com/tomtom215/movieai/internal/recommend"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"timeout zero", func(c *Config) { c.Server.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"loader case insensitive", func(c *Config) { c.Data.Loader = "DuckDB" }, ""},
		{"empty catalog path", func(c *Config) { c.Data.CatalogPath = "  " }, "DATA_CATALOG_PATH"},
		{"negative reload gap", func(c *Config) { c.Data.MinReloadGap = -time.Second }, "DATA_MIN_RELOAD_GAP"},
		{"reload interval shorter than gap", func(c *Config) {
			c.Data.ReloadInterval = time.Minute
			c.Data.MinReloadGap = 5 * time.Minute
		}, "DATA_RELOAD_INTERVAL"},
		{"reload interval equal to gap", func(c *Config) {
			c.Data.ReloadInterval = time.Minute
			c.Data.MinReloadGap = time.Minute
		}, ""},
		{"watch debounce too small", func(c *Config) {
			c.Data.Watch = true
			c.Data.WatchDebounce = time.Millisecond
		}, "DATA_WATCH_DEBOUNCE"},
		{"max k below default", func(c *Config) { c.Recommend.Limits.MaxK = 1 }, "limits.max_k"},
		{"strategy is case insensitive", func(c *Config) { c.Recommend.DefaultStrategy = "Content" }, ""},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"rate window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, "RATE_LIMIT_WINDOW"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"wildcard cors in production without reload", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.AdminReloadEnabled = false
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEngineConfigRoundTrip(t *testing.T) {
	want := recommend.DefaultConfig()
	cfg := &Config{Recommend: fromEngineConfig(want)}

	if diff := cmp.Diff(want, cfg.EngineConfig()); diff != "" {
		t.Errorf("EngineConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineConfigNormalizesStrategy(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.DefaultStrategy = " Collaborative "

	if got := cfg.EngineConfig().DefaultStrategy; got != recommend.StrategyCollaborative {
		t.Errorf("DefaultStrategy = %q, want %q", got, recommend.StrategyCollaborative)
	}
}

func TestDatasetOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Data.Loader = "duckdb"
	cfg.Data.RatingsPath = "ratings.csv"

	want := dataset.Options{Loader: "duckdb", CatalogPath: "data/movies.csv", RatingsPath: "ratings.csv"}
	if diff := cmp.Diff(want, cfg.DatasetOptions()); diff != "" {
		t.Errorf("DatasetOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS with admin reload should warn")
	}

	cfg.Security.CORSOrigins = []string{"https://movies.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}
