// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// isolateConfigFile points CONFIG_PATH at a file that does not exist and
// moves into an empty directory so no config.yaml is picked up.
func isolateConfigFile(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Chdir(t.TempDir())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Data.Loader != "csv" {
		t.Errorf("Data.Loader = %q, want csv", cfg.Data.Loader)
	}
	if !cfg.Data.LoadOnStartup {
		t.Error("Data.LoadOnStartup should be true by default")
	}
	if cfg.Data.Watch {
		t.Error("Data.Watch should be false by default")
	}
	if cfg.Data.MinReloadGap != 30*time.Second {
		t.Errorf("Data.MinReloadGap = %v, want 30s", cfg.Data.MinReloadGap)
	}
	if cfg.Recommend.DefaultStrategy != "hybrid" {
		t.Errorf("Recommend.DefaultStrategy = %q, want hybrid", cfg.Recommend.DefaultStrategy)
	}
	if cfg.Recommend.Limits.DefaultK != 5 {
		t.Errorf("Recommend.Limits.DefaultK = %d, want 5", cfg.Recommend.Limits.DefaultK)
	}
	if diff := cmp.Diff([]string{"*"}, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("Security.CORSOrigins mismatch (-want +got):\n%s", diff)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig() should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		envKey   string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"MOVIEAI_HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"DATA_CATALOG_PATH", "data.catalog_path"},
		{"DATA_RATINGS_PATH", "data.ratings_path"},
		{"DATA_WATCH", "data.watch"},
		{"RECOMMEND_MAX_K", "recommend.limits.max_k"},
		{"RECOMMEND_WEIGHT_CONTENT", "recommend.hybrid.weight_content"},
		{"RECOMMEND_CACHE_TTL", "recommend.cache.ttl"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"PATH", ""},
		{"HOME", ""},
		{"MOVIEAI_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := envTransformFunc(tt.envKey); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.envKey, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("env var wins", func(t *testing.T) {
		path := writeConfigFile(t, "server:\n  port: 9000\n")
		t.Setenv(ConfigPathEnvVar, path)
		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("default path in working directory", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile("config.yaml", []byte("server:\n  port: 9000\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("missing env path falls through", func(t *testing.T) {
		isolateConfigFile(t)
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	isolateConfigFile(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Recommend.Hybrid.WeightContent != 0.5 {
		t.Errorf("Recommend.Hybrid.WeightContent = %v, want 0.5", cfg.Recommend.Hybrid.WeightContent)
	}
	if cfg.Recommend.Limits.QueryTimeout != 5*time.Second {
		t.Errorf("Recommend.Limits.QueryTimeout = %v, want 5s", cfg.Recommend.Limits.QueryTimeout)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateConfigFile(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATA_LOADER", "duckdb")
	t.Setenv("DATA_CATALOG_PATH", "/data/imdb.csv")
	t.Setenv("MOVIEAI_DATA_RATINGS_PATH", "/data/ratings.csv")
	t.Setenv("DATA_WATCH", "true")
	t.Setenv("RECOMMEND_MAX_K", "20")
	t.Setenv("RECOMMEND_WEIGHT_COLLAB", "0.25")
	t.Setenv("RECOMMEND_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	wantData := DataConfig{
		Loader:        "duckdb",
		CatalogPath:   "/data/imdb.csv",
		RatingsPath:   "/data/ratings.csv",
		LoadOnStartup: true,
		Watch:         true,
		WatchDebounce: 2 * time.Second,
		MinReloadGap:  30 * time.Second,
	}
	if diff := cmp.Diff(wantData, cfg.Data); diff != "" {
		t.Errorf("Data mismatch (-want +got):\n%s", diff)
	}
	if cfg.Recommend.Limits.MaxK != 20 {
		t.Errorf("Recommend.Limits.MaxK = %d, want 20", cfg.Recommend.Limits.MaxK)
	}
	if cfg.Recommend.Hybrid.WeightCollab != 0.25 {
		t.Errorf("Recommend.Hybrid.WeightCollab = %v, want 0.25", cfg.Recommend.Hybrid.WeightCollab)
	}
	if cfg.Recommend.Cache.TTL != 30*time.Second {
		t.Errorf("Recommend.Cache.TTL = %v, want 30s", cfg.Recommend.Cache.TTL)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("Security.CORSOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 7000
data:
  catalog_path: /srv/movies.csv
  reload_interval: 1h
recommend:
  default_strategy: content
  hybrid:
    weight_content: 0.8
  limits:
    max_k: 10
security:
  cors_origins:
    - https://movies.example
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Data.CatalogPath != "/srv/movies.csv" {
		t.Errorf("Data.CatalogPath = %q, want /srv/movies.csv", cfg.Data.CatalogPath)
	}
	if cfg.Data.ReloadInterval != time.Hour {
		t.Errorf("Data.ReloadInterval = %v, want 1h", cfg.Data.ReloadInterval)
	}
	if cfg.Recommend.DefaultStrategy != "content" {
		t.Errorf("Recommend.DefaultStrategy = %q, want content", cfg.Recommend.DefaultStrategy)
	}
	if cfg.Recommend.Hybrid.WeightContent != 0.8 {
		t.Errorf("Recommend.Hybrid.WeightContent = %v, want 0.8", cfg.Recommend.Hybrid.WeightContent)
	}
	// Unset keys in a section keep their defaults
	if cfg.Recommend.Hybrid.WeightCollab != 0.5 {
		t.Errorf("Recommend.Hybrid.WeightCollab = %v, want 0.5", cfg.Recommend.Hybrid.WeightCollab)
	}
	if cfg.Recommend.Limits.DefaultK != 5 {
		t.Errorf("Recommend.Limits.DefaultK = %d, want 5", cfg.Recommend.Limits.DefaultK)
	}
	if diff := cmp.Diff([]string{"https://movies.example"}, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("Security.CORSOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 7000
logging:
  level: warn
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env should override file)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid port",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "unknown loader",
			env:     map[string]string{"DATA_LOADER": "parquet"},
			wantErr: "DATA_LOADER",
		},
		{
			name:    "invalid strategy",
			env:     map[string]string{"RECOMMEND_DEFAULT_STRATEGY": "popular"},
			wantErr: "default_strategy",
		},
		{
			name:    "negative weight",
			env:     map[string]string{"RECOMMEND_WEIGHT_CONTENT": "-1"},
			wantErr: "hybrid.weight_content",
		},
		{
			name:    "rate limit out of range",
			env:     map[string]string{"RATE_LIMIT_REQUESTS": "0"},
			wantErr: "RATE_LIMIT_REQUESTS",
		},
		{
			name:    "reload interval too short",
			env:     map[string]string{"DATA_RELOAD_INTERVAL": "5s"},
			wantErr: "DATA_RELOAD_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigFile(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanfInvalidFile(t *testing.T) {
	path := writeConfigFile(t, "server: [unclosed\n")
	t.Setenv(ConfigPathEnvVar, path)

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("LoadWithKoanf() expected error for malformed YAML")
	}
}
