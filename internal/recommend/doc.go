// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package recommend implements the movie recommendation engine.
//
// # Architecture
//
// A Snapshot bundles everything a query needs:
//
//   - Catalog: typed movies loaded from tabular rows (internal/catalog)
//   - Rating matrix: users by rated movies (internal/ratings)
//   - Content index: TF-IDF cosine similarity over genres, director, cast
//     and overview (algorithms.ContentIndex)
//   - Collaborative index: item-item cosine similarity over rating columns
//     (algorithms.CollaborativeIndex)
//
// Snapshots are immutable. The Engine holds the published one behind an
// atomic pointer; Rebuild builds a replacement off to the side and swaps it
// in only when every index has been built, so queries never observe a
// partial build. Only one build runs at a time and a second caller gets
// models.ErrBuildInProgress instead of waiting.
//
// # Strategies
//
//   - content: nearest neighbours in the content index
//   - collaborative: nearest neighbours in the collaborative index, falling
//     back to the genre-filtered top-rated list when the movie has no ratings
//   - hybrid: both lists (CandidateMultiplier*k deep) fused by rank position,
//     see package fusion
//
// Every response carries a Resolution telling whether the requested index
// answered (Resolved) or the top-rated list did (Fallback, with a reason).
// A request without a movie returns the top-rated movies.
//
// The genre filter is applied to ranked neighbours before truncation to k.
//
// # Errors
//
//   - models.ErrNotReady: no snapshot has been published yet
//   - models.ErrNotFound: unknown movie id or title
//   - models.ErrInvalidRequest: negative k, unknown strategy, bad weights
//   - *models.SchemaError: malformed input rows (build only)
//   - models.ErrEmptyCatalog: build with no movies
//
// An empty result is a success.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if _, err := engine.Rebuild(ctx, source); err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Title:    "Inception",
//	    Strategy: recommend.StrategyHybrid,
//	    K:        5,
//	    Genre:    "Sci-Fi",
//	})
package recommend
