// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package config

import (
	"strings"
	"time"

	"github.com/tomtom215/movieai/internal/dataset"
	"github.com/tomtom215/movieai/internal/logging"
	"github.com/tomtom215/movieai/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// DataConfig selects where catalog and rating rows come from and how often
// the published snapshot is rebuilt.
//
// Environment Variables:
//   - DATA_LOADER: csv or duckdb (default: csv)
//   - DATA_CATALOG_PATH: movie table (default: data/movies.csv)
//   - DATA_RATINGS_PATH: rating table (optional)
//   - DATA_LOAD_ON_STARTUP: build a snapshot when the service starts (default: true)
//   - DATA_WATCH: rebuild when the data files change (default: false)
//   - DATA_RELOAD_INTERVAL: periodic rebuild interval, 0 disables (default: 0)
//   - DATA_MIN_RELOAD_GAP: minimum time between rebuilds (default: 30s)
type DataConfig struct {
	Loader        string        `koanf:"loader"`
	CatalogPath   string        `koanf:"catalog_path"`
	RatingsPath   string        `koanf:"ratings_path"`
	LoadOnStartup bool          `koanf:"load_on_startup"`
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	ReloadInterval time.Duration `koanf:"reload_interval"`
	MinReloadGap   time.Duration `koanf:"min_reload_gap"`
}

// RecommendConfig mirrors recommend.Config with koanf tags.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_STRATEGY: content, collaborative, hybrid (default: hybrid)
//   - RECOMMEND_MAX_FEATURES: TF-IDF vocabulary cap (default: 5000)
//   - RECOMMEND_STOP_WORDS: drop English stop words (default: true)
//   - RECOMMEND_NUM_WORKERS: collaborative build workers (default: CPU count)
//   - RECOMMEND_WEIGHT_CONTENT / RECOMMEND_WEIGHT_COLLAB: hybrid weights (default: 0.5)
//   - RECOMMEND_CANDIDATE_MULTIPLIER: hybrid candidates per side, times k (default: 2)
//   - RECOMMEND_DEFAULT_K / RECOMMEND_MAX_K: result size limits (default: 5 / 50)
//   - RECOMMEND_QUERY_TIMEOUT / RECOMMEND_BUILD_TIMEOUT (default: 5s / 10m)
//   - RECOMMEND_CACHE_ENABLED / RECOMMEND_CACHE_TTL / RECOMMEND_CACHE_MAX_ENTRIES
type RecommendConfig struct {
	DefaultStrategy string `koanf:"default_strategy"`

	Content struct {
		MaxFeatures    int  `koanf:"max_features"`
		StopWords      bool `koanf:"stop_words"`
		MinTokenLength int  `koanf:"min_token_length"`
	} `koanf:"content"`

	Collaborative struct {
		NumWorkers int `koanf:"num_workers"`
	} `koanf:"collaborative"`

	Hybrid struct {
		WeightContent       float64 `koanf:"weight_content"`
		WeightCollab        float64 `koanf:"weight_collab"`
		CandidateMultiplier int     `koanf:"candidate_multiplier"`
	} `koanf:"hybrid"`

	Limits struct {
		DefaultK     int           `koanf:"default_k"`
		MaxK         int           `koanf:"max_k"`
		QueryTimeout time.Duration `koanf:"query_timeout"`
		BuildTimeout time.Duration `koanf:"build_timeout"`
	} `koanf:"limits"`

	Cache struct {
		Enabled    bool          `koanf:"enabled"`
		TTL        time.Duration `koanf:"ttl"`
		MaxEntries int           `koanf:"max_entries"`
	} `koanf:"cache"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs      int           `koanf:"rate_limit_reqs"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
	CORSOrigins        []string      `koanf:"cors_origins"`
	AdminReloadEnabled bool          `koanf:"admin_reload_enabled"`
}

// fromEngineConfig copies engine defaults into the koanf-tagged mirror.
func fromEngineConfig(rc *recommend.Config) RecommendConfig {
	var c RecommendConfig
	c.DefaultStrategy = rc.DefaultStrategy.String()
	c.Content.MaxFeatures = rc.Content.MaxFeatures
	c.Content.StopWords = rc.Content.StopWords
	c.Content.MinTokenLength = rc.Content.MinTokenLength
	c.Collaborative.NumWorkers = rc.Collaborative.NumWorkers
	c.Hybrid.WeightContent = rc.Hybrid.WeightContent
	c.Hybrid.WeightCollab = rc.Hybrid.WeightCollab
	c.Hybrid.CandidateMultiplier = rc.Hybrid.CandidateMultiplier
	c.Limits.DefaultK = rc.Limits.DefaultK
	c.Limits.MaxK = rc.Limits.MaxK
	c.Limits.QueryTimeout = rc.Limits.QueryTimeout
	c.Limits.BuildTimeout = rc.Limits.BuildTimeout
	c.Cache.Enabled = rc.Cache.Enabled
	c.Cache.TTL = rc.Cache.TTL
	c.Cache.MaxEntries = rc.Cache.MaxEntries
	return c
}

// EngineConfig converts the recommend section into the engine's config.
func (c *Config) EngineConfig() *recommend.Config {
	r := &c.Recommend
	return &recommend.Config{
		Content: recommend.ContentConfig{
			MaxFeatures:    r.Content.MaxFeatures,
			StopWords:      r.Content.StopWords,
			MinTokenLength: r.Content.MinTokenLength,
		},
		Collaborative: recommend.CollaborativeConfig{
			NumWorkers: r.Collaborative.NumWorkers,
		},
		Hybrid: recommend.HybridConfig{
			WeightContent:       r.Hybrid.WeightContent,
			WeightCollab:        r.Hybrid.WeightCollab,
			CandidateMultiplier: r.Hybrid.CandidateMultiplier,
		},
		Limits: recommend.LimitsConfig{
			DefaultK:     r.Limits.DefaultK,
			MaxK:         r.Limits.MaxK,
			QueryTimeout: r.Limits.QueryTimeout,
			BuildTimeout: r.Limits.BuildTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.Cache.Enabled,
			TTL:        r.Cache.TTL,
			MaxEntries: r.Cache.MaxEntries,
		},
		DefaultStrategy: recommend.Strategy(strings.ToLower(strings.TrimSpace(r.DefaultStrategy))),
	}
}

// DatasetOptions returns the options for dataset.New.
func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Loader:      c.Data.Loader,
		CatalogPath: c.Data.CatalogPath,
		RatingsPath: c.Data.RatingsPath,
	}
}

// LoggingOptions returns the options for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: true,
	}
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
