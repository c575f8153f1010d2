// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package algorithms implements the similarity indices behind the
// recommendation engine.
//
// # Indices
//
// Content-Based:
//   - ContentIndex: TF-IDF vectors over genres, director, cast and overview,
//     compared by cosine similarity
//
// Collaborative Filtering:
//   - CollaborativeIndex: item-item cosine similarity over the columns of
//     the user-by-movie rating matrix
//
// Both implement Index:
//
//	type Index interface {
//	    Name() string
//	    Len() int
//	    Contains(id int) bool
//	    Nearest(ctx context.Context, id, k int, filter Filter) ([]Scored, error)
//	}
//
// # Ordering
//
// Nearest returns results by descending similarity with ties broken by the
// lower movie id, never includes the query movie, and applies the optional
// filter after ranking and before truncation to k. Building twice from the
// same input yields identical results.
//
// # Thread Safety
//
// Indices are immutable once built and safe for concurrent queries without
// locking. Builds honour context cancellation.
package algorithms
