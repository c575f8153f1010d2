// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/movieai/internal/cache"
	"github.com/tomtom215/movieai/internal/metrics"
	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend/algorithms"
	"github.com/tomtom215/movieai/internal/recommend/fusion"
	"github.com/tomtom215/movieai/internal/validation"
)

// DataSource supplies the raw catalog and rating rows for a build.
// It is typically implemented by the dataset package.
type DataSource interface {
	// Load returns movie rows and rating rows. Column names are normalized
	// by the loaders, so sources may return the headers they read.
	Load(ctx context.Context) (movies, ratings []models.Row, err error)
}

// Engine serves recommendation queries against the published snapshot.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Published snapshot, swapped atomically on rebuild
	snapshot atomic.Pointer[Snapshot]
	version  atomic.Int64

	// Build state
	buildMu       sync.Mutex
	building      atomic.Bool
	statusMu      sync.RWMutex
	lastError     string
	lastAttemptAt time.Time

	// Metrics
	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	fallbackCount atomic.Int64
	errorCount    atomic.Int64
	buildCount    atomic.Int64
	latencyMicros atomic.Int64

	// Response cache keyed by snapshot version and normalized request
	cache *cache.LRU[string, *Response]
}

// NewEngine creates a new recommendation engine. The engine rejects queries
// with models.ErrNotReady until a snapshot is published by Rebuild or Load.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[string, *Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	return e, nil
}

// Rebuild loads rows from src, builds a new snapshot and publishes it.
// Only one build runs at a time; a concurrent call fails immediately with
// models.ErrBuildInProgress. On failure the previous snapshot keeps serving.
func (e *Engine) Rebuild(ctx context.Context, src DataSource) (*Snapshot, error) {
	return e.build(ctx, func(ctx context.Context) ([]models.Row, []models.Row, error) {
		movies, ratingRows, err := src.Load(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load data: %w", err)
		}
		return movies, ratingRows, nil
	})
}

// Load builds and publishes a snapshot from rows already in memory.
// It follows the same single-writer rules as Rebuild.
func (e *Engine) Load(ctx context.Context, movieRows, ratingRows []models.Row) (*Snapshot, error) {
	return e.build(ctx, func(context.Context) ([]models.Row, []models.Row, error) {
		return movieRows, ratingRows, nil
	})
}

type rowLoader func(ctx context.Context) (movies, ratings []models.Row, err error)

func (e *Engine) build(ctx context.Context, load rowLoader) (*Snapshot, error) {
	if !e.buildMu.TryLock() {
		metrics.RecordSnapshotRejected()
		return nil, models.ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	e.building.Store(true)
	defer e.building.Store(false)

	start := time.Now()
	buildCtx, cancel := context.WithTimeout(ctx, e.config.Limits.BuildTimeout)
	defer cancel()

	snap, err := e.loadAndBuild(buildCtx, load)
	if err != nil {
		e.recordBuildFailure(err, time.Since(start))
		return nil, err
	}

	e.publish(snap)
	metrics.RecordSnapshotBuild(time.Since(start), snap.Stats(), nil)

	e.logger.Info().
		Int64("version", snap.Version).
		Int("movies", snap.Catalog.Len()).
		Int("rated_movies", snap.Collaborative.Len()).
		Int("users", snap.Matrix.NumUsers()).
		Int("dropped_ratings", snap.Matrix.Dropped()).
		Int("vocabulary", snap.Content.VocabularySize()).
		Int64("duration_ms", snap.BuildDuration.Milliseconds()).
		Msg("snapshot published")

	return snap, nil
}

func (e *Engine) loadAndBuild(ctx context.Context, load rowLoader) (*Snapshot, error) {
	movieRows, ratingRows, err := load(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := BuildSnapshot(ctx, e.config, movieRows, ratingRows)
	if err != nil {
		return nil, err
	}

	for _, w := range snap.Catalog.Warnings() {
		e.logger.Warn().Str("warning", w).Msg("catalog load warning")
	}
	return snap, nil
}

// recordBuildFailure keeps the previous snapshot and records the error.
func (e *Engine) recordBuildFailure(err error, duration time.Duration) {
	e.statusMu.Lock()
	e.lastError = err.Error()
	e.lastAttemptAt = time.Now()
	e.statusMu.Unlock()

	metrics.RecordSnapshotBuild(duration, metrics.SnapshotStats{}, err)

	e.logger.Error().
		Err(err).
		Bool("schema_error", models.IsSchemaError(err)).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("snapshot build failed")
}

// publish assigns the next version and swaps the snapshot in.
// Must be called with buildMu held.
func (e *Engine) publish(snap *Snapshot) {
	snap.Version = e.version.Add(1)
	e.snapshot.Store(snap)
	e.buildCount.Add(1)

	e.statusMu.Lock()
	e.lastError = ""
	e.lastAttemptAt = time.Now()
	e.statusMu.Unlock()

	e.clearCache()
}

// Snapshot returns the published snapshot, or nil before the first build.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Ready reports whether a snapshot has been published.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Recommend answers a recommendation query against the published snapshot.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.snapshot.Load()
	if snap == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(string(req.Strategy), "", outcomeFor(models.ErrNotReady), 0, time.Since(start))
		return nil, models.ErrNotReady
	}

	if err := validateRequest(&req); err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(string(req.Strategy), "", outcomeFor(err), 0, time.Since(start))
		return nil, err
	}

	// Prepare request
	req = e.prepareRequest(req, snap)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	// Check cache early return
	cacheKey := e.cacheKey(req, snap)
	if resp := e.tryGetCachedResponse(cacheKey, req, start, logger); resp != nil {
		return resp, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, e.config.Limits.QueryTimeout)
	defer cancel()

	resp, err := e.execute(queryCtx, snap, req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(string(req.Strategy), "", outcomeFor(err), 0, time.Since(start))
		logger.Debug().Err(err).Msg("recommendation failed")
		return nil, err
	}

	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	e.latencyMicros.Add(time.Since(start).Microseconds())
	if resp.Metadata.Resolution.IsFallback() {
		e.fallbackCount.Add(1)
	}
	e.cacheResponse(cacheKey, resp)

	metrics.RecordRecommendation(string(req.Strategy), string(resp.Metadata.Resolution.Kind), "ok", len(resp.Items), time.Since(start))
	logger.Debug().
		Str("resolution", string(resp.Metadata.Resolution.Kind)).
		Str("reason", string(resp.Metadata.Resolution.Reason)).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// validateRequest applies struct tag validation and reports failures as
// models.ErrInvalidRequest.
func validateRequest(req *Request) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidRequest, verr.Error())
	}
	return nil
}

// prepareRequest applies defaults and generates request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request, snap *Snapshot) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if req.Strategy == "" {
		req.Strategy = e.config.DefaultStrategy
	}

	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	if n := snap.Catalog.Len(); req.K > n {
		req.K = n
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Genre = strings.TrimSpace(req.Genre)

	if req.Strategy == StrategyHybrid {
		if req.WeightContent == nil {
			w := e.config.Hybrid.WeightContent
			req.WeightContent = &w
		}
		if req.WeightCollab == nil {
			w := e.config.Hybrid.WeightCollab
			req.WeightCollab = &w
		}
	}

	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	lc := e.logger.With().
		Str("request_id", req.RequestID).
		Str("strategy", req.Strategy.String()).
		Int("k", req.K)
	if req.MovieID != nil {
		lc = lc.Int("movie_id", *req.MovieID)
	} else if req.Title != "" {
		lc = lc.Str("title", req.Title)
	}
	if req.Genre != "" {
		lc = lc.Str("genre", req.Genre)
	}
	return lc.Logger()
}

// execute resolves the query movie and dispatches on strategy.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) execute(ctx context.Context, snap *Snapshot, req Request) (*Response, error) {
	meta := e.buildResponseMetadata(req, snap)

	query, err := resolveQuery(snap, req, &meta)
	if err != nil {
		return nil, err
	}

	if query == nil {
		meta.Resolution = Fallback(ReasonNoQuery)
		return &Response{
			Items:    topRatedRecommendations(snap, req.Genre, req.K),
			Metadata: meta,
		}, nil
	}
	meta.QueryMovieID = query.ID

	var (
		scored     []algorithms.Scored
		resolution Resolution
	)
	filter := genreFilter(snap, req.Genre)

	switch req.Strategy {
	case StrategyContent:
		scored, err = snap.Content.Nearest(ctx, query.ID, req.K, filter)
		resolution = Resolved(algorithms.NameContent)
	case StrategyCollaborative:
		scored, resolution, err = e.collaborative(ctx, snap, query.ID, req.K, req.Genre, filter)
	case StrategyHybrid:
		meta.Weights = &Weights{Content: *req.WeightContent, Collab: *req.WeightCollab}
		scored, resolution, err = e.hybrid(ctx, snap, query.ID, req, filter)
	default:
		err = fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidRequest, req.Strategy)
	}
	if err != nil {
		return nil, err
	}

	meta.Resolution = resolution
	return &Response{
		Items:    toRecommendations(snap, scored),
		Metadata: meta,
	}, nil
}

// resolveQuery returns the query movie, or nil when the request has none.
// Ambiguous titles resolve to the first match in load order and add a warning.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func resolveQuery(snap *Snapshot, req Request, meta *ResponseMetadata) (*models.Movie, error) {
	if !req.HasQuery() {
		return nil, nil
	}
	if req.MovieID != nil {
		return snap.Catalog.ByID(*req.MovieID)
	}

	m, err := snap.Catalog.ByTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if n := snap.Catalog.TitleMatches(req.Title); n > 1 {
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("title %q matches %d movies; using id %d", req.Title, n, m.ID))
	}
	return m, nil
}

// collaborative queries the collaborative index and falls back to the
// genre-filtered top-rated list when the movie has no ratings.
func (e *Engine) collaborative(ctx context.Context, snap *Snapshot, id, n int, genre string, filter algorithms.Filter) ([]algorithms.Scored, Resolution, error) {
	scored, err := snap.Collaborative.Nearest(ctx, id, n, filter)
	if err == nil {
		return scored, Resolved(algorithms.NameCollaborative), nil
	}
	if !errors.Is(err, algorithms.ErrNoRatings) {
		return nil, Resolution{}, err
	}

	reason := ReasonNoRatings
	if snap.Matrix.Empty() {
		reason = ReasonEmptyRatings
	}
	e.logger.Debug().
		Int("movie_id", id).
		Str("reason", string(reason)).
		Msg("collaborative fallback to top rated")

	return topRatedScored(snap, genre, n, id), Fallback(reason), nil
}

// hybrid pulls CandidateMultiplier*k candidates from each side and fuses
// them by rank position.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) hybrid(ctx context.Context, snap *Snapshot, id int, req Request, filter algorithms.Filter) ([]algorithms.Scored, Resolution, error) {
	n := req.K * e.config.Hybrid.CandidateMultiplier

	content, err := snap.Content.Nearest(ctx, id, n, filter)
	if err != nil {
		return nil, Resolution{}, err
	}
	collab, collabRes, err := e.collaborative(ctx, snap, id, n, req.Genre, filter)
	if err != nil {
		return nil, Resolution{}, err
	}

	fused, err := fusion.Fuse(content, collab, *req.WeightContent, *req.WeightCollab, req.K)
	if err != nil {
		return nil, Resolution{}, err
	}

	scored := make([]algorithms.Scored, len(fused))
	for i, f := range fused {
		scored[i] = algorithms.Scored{ID: f.ID, Score: f.Score}
	}

	res := Resolved(string(StrategyHybrid))
	if collabRes.IsFallback() {
		res.Reason = collabRes.Reason
	}
	return scored, res, nil
}

// genreFilter returns nil for a blank genre so every movie matches.
func genreFilter(snap *Snapshot, genre string) algorithms.Filter {
	if genre == "" {
		return nil
	}
	return func(id int) bool {
		m, err := snap.Catalog.ByID(id)
		return err == nil && m.HasGenre(genre)
	}
}

// topRatedScored returns the top-rated movies scored by their rating.
func topRatedScored(snap *Snapshot, genre string, k int, exclude ...int) []algorithms.Scored {
	movies := snap.Catalog.TopRated(genre, k, exclude...)
	scored := make([]algorithms.Scored, len(movies))
	for i, m := range movies {
		scored[i] = algorithms.Scored{ID: m.ID, Score: m.Rating}
	}
	return scored
}

func topRatedRecommendations(snap *Snapshot, genre string, k int) []models.Recommendation {
	movies := snap.Catalog.TopRated(genre, k)
	recs := make([]models.Recommendation, len(movies))
	for i, m := range movies {
		recs[i] = models.NewRecommendation(m, m.Rating)
	}
	return recs
}

// toRecommendations attaches catalog metadata to scored ids.
func toRecommendations(snap *Snapshot, scored []algorithms.Scored) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(scored))
	for _, s := range scored {
		m, err := snap.Catalog.ByID(s.ID)
		if err != nil {
			continue
		}
		recs = append(recs, models.NewRecommendation(m, s.Score))
	}
	return recs
}

// buildResponseMetadata constructs response metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, snap *Snapshot) ResponseMetadata {
	return ResponseMetadata{
		RequestID:       req.RequestID,
		Strategy:        req.Strategy,
		K:               req.K,
		Genre:           req.Genre,
		SnapshotVersion: snap.Version,
		BuiltAt:         snap.BuiltAt,
		Timestamp:       time.Now(),
	}
}

// outcomeFor maps an error to the metrics outcome label.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, models.ErrNotReady):
		return "not_ready"
	default:
		return "error"
	}
}

// cacheKey generates a cache key for a prepared request.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(req Request, snap *Snapshot) string {
	var b strings.Builder
	b.WriteString("rec:")
	b.WriteString(strconv.FormatInt(snap.Version, 10))
	b.WriteByte(':')
	b.WriteString(string(req.Strategy))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(req.K))
	b.WriteByte(':')
	switch {
	case req.MovieID != nil:
		b.WriteString("id=")
		b.WriteString(strconv.Itoa(*req.MovieID))
	case req.Title != "":
		b.WriteString("title=")
		b.WriteString(strings.ToLower(req.Title))
	}
	b.WriteString(":genre=")
	b.WriteString(strings.ToLower(req.Genre))
	if req.WeightContent != nil && req.WeightCollab != nil {
		fmt.Fprintf(&b, ":w=%g/%g", *req.WeightContent, *req.WeightCollab)
	}
	return b.String()
}

// tryGetCachedResponse attempts to retrieve a cached response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()

	metrics.RecordRecommendation(string(req.Strategy), string(resp.Metadata.Resolution.Kind), "ok", len(resp.Items), time.Since(start))
	logger.Debug().Msg("cache hit")
	return resp
}

// cacheResponse stores a copy of the response if caching is enabled.
func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache != nil {
		e.cache.Add(key, copyResponse(resp))
	}
}

func (e *Engine) clearCache() {
	if e.cache != nil {
		e.cache.Clear()
		e.logger.Debug().Msg("cache cleared")
	}
}

// copyResponse copies the slices so callers cannot modify cached state.
func copyResponse(resp *Response) *Response {
	items := make([]models.Recommendation, len(resp.Items))
	copy(items, resp.Items)

	meta := resp.Metadata
	if resp.Metadata.Warnings != nil {
		meta.Warnings = append([]string(nil), resp.Metadata.Warnings...)
	}
	if resp.Metadata.Weights != nil {
		w := *resp.Metadata.Weights
		meta.Weights = &w
	}

	return &Response{Items: items, Metadata: meta}
}

// Status returns the current build status.
func (e *Engine) Status() BuildStatus {
	e.statusMu.RLock()
	status := BuildStatus{
		IsBuilding:    e.building.Load(),
		LastError:     e.lastError,
		LastAttemptAt: e.lastAttemptAt,
	}
	e.statusMu.RUnlock()

	snap := e.snapshot.Load()
	if snap == nil {
		return status
	}

	status.Ready = true
	status.SnapshotVersion = snap.Version
	status.BuiltAt = snap.BuiltAt
	status.BuildDurationMS = snap.BuildDuration.Milliseconds()
	status.MovieCount = snap.Catalog.Len()
	status.RatedMovieCount = snap.Collaborative.Len()
	status.UserCount = snap.Matrix.NumUsers()
	status.RatingCount = snap.Matrix.Ratings()
	status.DroppedRatings = snap.Matrix.Dropped()
	status.VocabularySize = snap.Content.VocabularySize()
	status.Warnings = snap.Catalog.Warnings()
	return status
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		FallbackCount: e.fallbackCount.Load(),
		ErrorCount:    e.errorCount.Load(),
		BuildCount:    e.buildCount.Load(),
	}

	// Only computed queries contribute latency
	if computed := m.RequestCount - m.CacheHits - m.ErrorCount; computed > 0 {
		m.AverageLatencyMS = float64(e.latencyMicros.Load()) / float64(computed) / 1000
	}
	return m
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
