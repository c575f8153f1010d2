// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/movieai/internal/models"
)

// Strategy selects which similarity signal drives a query.
type Strategy string

const (
	// StrategyContent ranks by TF-IDF similarity of movie metadata.
	StrategyContent Strategy = "content"
	// StrategyCollaborative ranks by co-rating similarity.
	StrategyCollaborative Strategy = "collaborative"
	// StrategyHybrid fuses both rankings by rank position.
	StrategyHybrid Strategy = "hybrid"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{StrategyContent, StrategyCollaborative, StrategyHybrid}

// Valid reports whether s is a supported strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyContent, StrategyCollaborative, StrategyHybrid:
		return true
	default:
		return false
	}
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// ParseStrategy parses a strategy name case-insensitively. A blank name
// returns the zero Strategy so the engine default applies.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if s == "" || s.Valid() {
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidRequest, name)
}

// ResolutionKind tells whether a query used the requested similarity
// signal or fell back to top-rated movies.
type ResolutionKind string

const (
	// ResolutionResolved means the requested index produced the results.
	ResolutionResolved ResolutionKind = "resolved"
	// ResolutionFallback means results came from the top-rated fallback.
	ResolutionFallback ResolutionKind = "fallback"
)

// FallbackReason explains a fallback resolution.
type FallbackReason string

const (
	// ReasonNoQuery means no movie was given; results are catalog-wide top rated.
	ReasonNoQuery FallbackReason = "no_query"
	// ReasonNoRatings means the query movie has no ratings.
	ReasonNoRatings FallbackReason = "no_ratings"
	// ReasonEmptyRatings means the rating matrix is empty.
	ReasonEmptyRatings FallbackReason = "empty_ratings"
)

// Resolution describes how a query was answered.
type Resolution struct {
	// Kind is resolved or fallback.
	Kind ResolutionKind `json:"kind"`

	// Index names the similarity index used when resolved. For hybrid
	// queries this is "hybrid".
	Index string `json:"index,omitempty"`

	// Reason is set for fallback resolutions, and for hybrid queries whose
	// collaborative side fell back.
	Reason FallbackReason `json:"reason,omitempty"`
}

// Resolved returns a resolution for results produced by the named index.
func Resolved(index string) Resolution {
	return Resolution{Kind: ResolutionResolved, Index: index}
}

// Fallback returns a fallback resolution with the given reason.
func Fallback(reason FallbackReason) Resolution {
	return Resolution{Kind: ResolutionFallback, Reason: reason}
}

// IsFallback reports whether the results came from the top-rated fallback.
func (r Resolution) IsFallback() bool {
	return r.Kind == ResolutionFallback
}

// Request represents a recommendation request.
//
// Exactly one of MovieID or Title identifies the query movie. When both are
// empty the engine returns top-rated movies.
type Request struct {
	// MovieID identifies the query movie.
	MovieID *int `json:"movie_id,omitempty"`

	// Title identifies the query movie by case-insensitive exact title.
	// Ignored when MovieID is set.
	Title string `json:"title,omitempty" validate:"max=500"`

	// Strategy selects the similarity signal. Defaults to Config.DefaultStrategy.
	Strategy Strategy `json:"strategy,omitempty" validate:"omitempty,oneof=content collaborative hybrid"`

	// K is the number of recommendations to return.
	// Defaults to Config.Limits.DefaultK if zero.
	K int `json:"k,omitempty" validate:"gte=0"`

	// Genre restricts results to movies carrying this genre. Blank matches all.
	Genre string `json:"genre,omitempty" validate:"max=100"`

	// WeightContent overrides Config.Hybrid.WeightContent for hybrid queries.
	WeightContent *float64 `json:"weight_content,omitempty" validate:"omitnil,finite,gte=0"`

	// WeightCollab overrides Config.Hybrid.WeightCollab for hybrid queries.
	WeightCollab *float64 `json:"weight_collab,omitempty" validate:"omitnil,finite,gte=0"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// HasQuery reports whether the request names a query movie.
func (r *Request) HasQuery() bool {
	return r.MovieID != nil || strings.TrimSpace(r.Title) != ""
}

// Response represents a recommendation response.
type Response struct {
	// Items is the ordered list of recommended movies.
	Items []models.Recommendation `json:"items"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Strategy is the strategy used.
	Strategy Strategy `json:"strategy"`

	// Resolution describes how the query was answered.
	Resolution Resolution `json:"resolution"`

	// QueryMovieID is the resolved query movie, zero when absent.
	QueryMovieID int `json:"query_movie_id,omitempty"`

	// K is the effective result limit after defaulting and capping.
	K int `json:"k"`

	// Genre is the genre filter applied, if any.
	Genre string `json:"genre,omitempty"`

	// Weights are the fusion weights applied to hybrid queries.
	Weights *Weights `json:"weights,omitempty"`

	// SnapshotVersion is the version of the snapshot that served the query.
	SnapshotVersion int64 `json:"snapshot_version"`

	// BuiltAt is when that snapshot was built.
	BuiltAt time.Time `json:"built_at"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Warnings carries non-fatal notes such as an ambiguous title.
	Warnings []string `json:"warnings,omitempty"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Weights are hybrid fusion weights.
type Weights struct {
	Content float64 `json:"content"`
	Collab  float64 `json:"collab"`
}

// BuildStatus represents the current snapshot state.
type BuildStatus struct {
	// Ready indicates whether a snapshot has been published.
	Ready bool `json:"ready"`

	// IsBuilding indicates whether a rebuild is in progress.
	IsBuilding bool `json:"is_building"`

	// SnapshotVersion is the published snapshot version.
	SnapshotVersion int64 `json:"snapshot_version"`

	// BuiltAt is when the published snapshot was built.
	BuiltAt time.Time `json:"built_at,omitempty"`

	// BuildDurationMS is how long the published snapshot took to build.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// MovieCount is the number of movies in the catalog.
	MovieCount int `json:"movie_count"`

	// RatedMovieCount is the number of movies in the collaborative index.
	RatedMovieCount int `json:"rated_movie_count"`

	// UserCount is the number of users in the rating matrix.
	UserCount int `json:"user_count"`

	// RatingCount is the number of distinct (user, movie) ratings.
	RatingCount int `json:"rating_count"`

	// DroppedRatings is the number of ratings for movies not in the catalog.
	DroppedRatings int `json:"dropped_ratings"`

	// VocabularySize is the number of TF-IDF terms.
	VocabularySize int `json:"vocabulary_size"`

	// Warnings are non-fatal notes from loading the catalog.
	Warnings []string `json:"warnings,omitempty"`

	// LastError contains the last build error, if any.
	LastError string `json:"last_error,omitempty"`

	// LastAttemptAt is when a build last finished, successfully or not.
	LastAttemptAt time.Time `json:"last_attempt_at,omitempty"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// FallbackCount is the number of queries answered by the top-rated fallback.
	FallbackCount int64 `json:"fallback_count"`

	// ErrorCount is the total number of failed requests.
	ErrorCount int64 `json:"error_count"`

	// BuildCount is the number of successful snapshot builds.
	BuildCount int64 `json:"build_count"`

	// AverageLatencyMS is the average recommendation latency.
	AverageLatencyMS float64 `json:"average_latency_ms"`
}
