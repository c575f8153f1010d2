// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package fusion merges the content and collaborative rankings into one.
//
// Raw similarities from the two indices are not on comparable scales, so
// fusion works on rank position only. In a list of N items the item at
// 1-based position p scores (N - p) / N: the head scores (N-1)/N and the
// tail scores 0. The lists are outer-joined on movie id, a missing entry
// contributes 0, and
//
//	score = wContent * contentScore + wCollab * collabScore
//
// Weights are not normalized and need not sum to 1. Results are ordered by
// score descending, ties broken by lower movie id, and truncated to k.
package fusion

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend/algorithms"
)

// Fused is one merged result with the per-source rank scores that produced it.
type Fused struct {
	ID           int     `json:"id"`
	Score        float64 `json:"score"`
	ContentScore float64 `json:"content_score"`
	CollabScore  float64 `json:"collab_score"`
	ContentRank  int     `json:"content_rank,omitempty"`
	CollabRank   int     `json:"collab_rank,omitempty"`
}

// RankScore returns the rank-based score of the item at 1-based position
// in a list of length n.
func RankScore(position, n int) float64 {
	if n <= 0 || position < 1 || position > n {
		return 0
	}
	return float64(n-position) / float64(n)
}

// ValidateWeights rejects negative or non-finite weights.
func ValidateWeights(wContent, wCollab float64) error {
	weights := [...]struct {
		name  string
		value float64
	}{{"weight_content", wContent}, {"weight_collab", wCollab}}

	for _, w := range weights {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) || w.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative finite number, got %v", models.ErrInvalidRequest, w.name, w.value)
		}
	}
	return nil
}

// Fuse merges two ranked lists. Only the order of each input matters; their
// scores are ignored. If an id repeats within a list, its first position counts.
func Fuse(content, collab []algorithms.Scored, wContent, wCollab float64, k int) ([]Fused, error) {
	if err := ValidateWeights(wContent, wCollab); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []Fused{}, nil
	}

	merged := make(map[int]*Fused, len(content)+len(collab))
	get := func(id int) *Fused {
		f, ok := merged[id]
		if !ok {
			f = &Fused{ID: id}
			merged[id] = f
		}
		return f
	}

	for i, s := range content {
		f := get(s.ID)
		if f.ContentRank == 0 {
			f.ContentRank = i + 1
			f.ContentScore = RankScore(i+1, len(content))
		}
	}
	for i, s := range collab {
		f := get(s.ID)
		if f.CollabRank == 0 {
			f.CollabRank = i + 1
			f.CollabScore = RankScore(i+1, len(collab))
		}
	}

	out := make([]Fused, 0, len(merged))
	for _, f := range merged {
		f.Score = wContent*f.ContentScore + wCollab*f.CollabScore
		out = append(out, *f)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
