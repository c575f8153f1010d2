// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package algorithms

import (
	"context"
	"math"
	"sort"
)

// Index names.
const (
	NameContent       = "content"
	NameCollaborative = "collaborative"
)

// Scored is a movie id paired with a score.
type Scored struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}

// Filter reports whether a candidate movie may appear in results.
// A nil Filter admits every candidate.
type Filter func(id int) bool

// Index is the query surface shared by the similarity indices.
type Index interface {
	// Name returns the index identifier.
	Name() string

	// Len returns the number of indexed movies.
	Len() int

	// Contains reports whether the movie is indexed.
	Contains(id int) bool

	// Nearest returns up to k movies most similar to id.
	Nearest(ctx context.Context, id, k int, filter Filter) ([]Scored, error)
}

// SortScored orders by score descending, ties broken by lower id.
func SortScored(s []Scored) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].ID < s[j].ID
	})
}

// rankNeighbors sorts candidates and truncates to k.
func rankNeighbors(candidates []Scored, k int) []Scored {
	SortScored(candidates)
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// cosineSimilarity computes cosine similarity between two dense vectors
// given their precomputed L2 norms.
func cosineSimilarity(a, b []float64, normA, normB float64) float64 {
	if len(a) != len(b) || normA == 0 || normB == 0 {
		return 0
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	return clampUnit(dot / (normA * normB))
}

// l2Norm returns the Euclidean length of v.
func l2Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// clampUnit bounds rounding noise into [0, 1]. Inputs here are non-negative,
// so the cosine never legitimately leaves that range.
func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Ensure all indices implement the interface.
var (
	_ Index = (*ContentIndex)(nil)
	_ Index = (*CollaborativeIndex)(nil)
)
