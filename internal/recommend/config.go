// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package recommend

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/movieai/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Content contains parameters for the TF-IDF content index.
	Content ContentConfig `json:"content"`

	// Collaborative contains parameters for the item-item collaborative index.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Hybrid contains the default fusion weights.
	Hybrid HybridConfig `json:"hybrid"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`

	// DefaultStrategy is used when a request does not name one.
	// Default: hybrid.
	DefaultStrategy Strategy `json:"default_strategy"`
}

// ContentConfig contains parameters for content-based similarity.
type ContentConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary to the most frequent terms.
	// Default: 5000.
	MaxFeatures int `json:"max_features"`

	// StopWords enables English stop-word removal from overviews.
	// Default: true.
	StopWords bool `json:"stop_words"`

	// MinTokenLength drops overview words shorter than this.
	// Default: 2.
	MinTokenLength int `json:"min_token_length"`
}

// CollaborativeConfig contains parameters for collaborative similarity.
type CollaborativeConfig struct {
	// NumWorkers is the number of goroutines computing pairwise similarities.
	// Default: runtime.NumCPU().
	NumWorkers int `json:"num_workers"`
}

// HybridConfig contains parameters for hybrid rank fusion.
type HybridConfig struct {
	// WeightContent is the default content weight. Weights are not normalized.
	// Default: 0.5.
	WeightContent float64 `json:"weight_content"`

	// WeightCollab is the default collaborative weight.
	// Default: 0.5.
	WeightCollab float64 `json:"weight_collab"`

	// CandidateMultiplier is how many times k candidates are pulled from
	// each side before fusion.
	// Default: 2.
	CandidateMultiplier int `json:"candidate_multiplier"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a request leaves k at zero.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed k value.
	// Default: 50.
	MaxK int `json:"max_k"`

	// QueryTimeout bounds a single recommendation query.
	// Default: 5s.
	QueryTimeout time.Duration `json:"query_timeout"`

	// BuildTimeout bounds a snapshot build.
	// Default: 10m.
	BuildTimeout time.Duration `json:"build_timeout"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			MaxFeatures:    5000,
			StopWords:      true,
			MinTokenLength: 2,
		},
		Collaborative: CollaborativeConfig{
			NumWorkers: runtime.NumCPU(),
		},
		Hybrid: HybridConfig{
			WeightContent:       0.5,
			WeightCollab:        0.5,
			CandidateMultiplier: 2,
		},
		Limits: LimitsConfig{
			DefaultK:     5,
			MaxK:         50,
			QueryTimeout: 5 * time.Second,
			BuildTimeout: 10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		DefaultStrategy: StrategyHybrid,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Content.MaxFeatures < 1 {
		return fmt.Errorf("content.max_features must be positive, got %d", c.Content.MaxFeatures)
	}
	if c.Content.MinTokenLength < 1 {
		return fmt.Errorf("content.min_token_length must be positive, got %d", c.Content.MinTokenLength)
	}

	if c.Collaborative.NumWorkers < 0 {
		return fmt.Errorf("collaborative.num_workers must be non-negative, got %d", c.Collaborative.NumWorkers)
	}

	if !validWeight(c.Hybrid.WeightContent) {
		return fmt.Errorf("hybrid.weight_content must be a non-negative finite number, got %f", c.Hybrid.WeightContent)
	}
	if !validWeight(c.Hybrid.WeightCollab) {
		return fmt.Errorf("hybrid.weight_collab must be a non-negative finite number, got %f", c.Hybrid.WeightCollab)
	}
	if c.Hybrid.CandidateMultiplier < 1 {
		return fmt.Errorf("hybrid.candidate_multiplier must be positive, got %d", c.Hybrid.CandidateMultiplier)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.QueryTimeout <= 0 {
		return fmt.Errorf("limits.query_timeout must be positive, got %v", c.Limits.QueryTimeout)
	}
	if c.Limits.BuildTimeout <= 0 {
		return fmt.Errorf("limits.build_timeout must be positive, got %v", c.Limits.BuildTimeout)
	}

	if c.Cache.Enabled {
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
	}

	if !c.DefaultStrategy.Valid() {
		return fmt.Errorf("default_strategy must be one of content, collaborative, hybrid, got %q", c.DefaultStrategy)
	}

	return nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types
	clone := *c
	return &clone
}

// contentIndexConfig converts to the algorithms package configuration.
func (c *Config) contentIndexConfig() algorithms.ContentConfig {
	return algorithms.ContentConfig{
		MaxFeatures:    c.Content.MaxFeatures,
		StopWords:      c.Content.StopWords,
		MinTokenLength: c.Content.MinTokenLength,
	}
}

func (c *Config) collaborativeIndexConfig() algorithms.CollaborativeConfig {
	return algorithms.CollaborativeConfig{
		NumWorkers: c.Collaborative.NumWorkers,
	}
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Limits struct {
			DefaultK     int    `json:"default_k"`
			MaxK         int    `json:"max_k"`
			QueryTimeout string `json:"query_timeout"`
			BuildTimeout string `json:"build_timeout"`
		} `json:"limits"`
		Cache struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		} `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Limits: struct {
			DefaultK     int    `json:"default_k"`
			MaxK         int    `json:"max_k"`
			QueryTimeout string `json:"query_timeout"`
			BuildTimeout string `json:"build_timeout"`
		}{
			DefaultK:     c.Limits.DefaultK,
			MaxK:         c.Limits.MaxK,
			QueryTimeout: c.Limits.QueryTimeout.String(),
			BuildTimeout: c.Limits.BuildTimeout.String(),
		},
		Cache: struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		}{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
