// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/ratings"
)

// ErrNoRatings reports a query for a movie that has no ratings and is
// therefore not part of the collaborative index. Errors carrying it also
// match models.ErrNotFound.
var ErrNoRatings = errors.New("movie has no ratings")

// CollaborativeConfig contains configuration for the collaborative index.
type CollaborativeConfig struct {
	// NumWorkers is the number of parallel workers computing similarities.
	// Default: runtime.NumCPU().
	NumWorkers int
}

// DefaultCollaborativeConfig returns default collaborative index configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		NumWorkers: runtime.NumCPU(),
	}
}

// CollaborativeIndex implements item-based collaborative similarity.
// Each rated movie is the vector of user ratings (its matrix column) and
//
//	sim(a, b) = (a . b) / (|a| * |b|)
//
// The full symmetric similarity matrix is computed when the index is built,
// with a diagonal of 1. Movies without ratings are not indexed.
type CollaborativeIndex struct {
	ids   []int
	index map[int]int

	// sims is the row-major n*n similarity matrix.
	sims []float64
}

// BuildCollaborativeIndex computes pairwise similarities across all rated
// movies in parallel. An empty matrix yields an empty index.
func BuildCollaborativeIndex(ctx context.Context, m *ratings.Matrix, cfg CollaborativeConfig) (*CollaborativeIndex, error) {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = DefaultCollaborativeConfig().NumWorkers
	}

	n := m.NumMovies()
	idx := &CollaborativeIndex{
		ids:   make([]int, n),
		index: make(map[int]int, n),
		sims:  make([]float64, n*n),
	}
	copy(idx.ids, m.Movies())
	for j, id := range idx.ids {
		idx.index[id] = j
	}

	if n == 0 {
		return idx, nil
	}

	norms := make([]float64, n)
	for j := 0; j < n; j++ {
		norms[j] = l2Norm(m.Column(j))
	}

	// Each row task owns cells (a, b) and (b, a) for b > a, so no two
	// tasks write the same cell.
	chunkSize := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		rows := [2]int{start, end}
		g.Go(func() error {
			for a := rows[0]; a < rows[1]; a++ {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}

				colA := m.Column(a)
				idx.sims[a*n+a] = 1
				for b := a + 1; b < n; b++ {
					s := cosineSimilarity(colA, m.Column(b), norms[a], norms[b])
					idx.sims[a*n+b] = s
					idx.sims[b*n+a] = s
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collaborative index: %w", err)
	}

	return idx, nil
}

// Name returns the index identifier.
func (c *CollaborativeIndex) Name() string {
	return NameCollaborative
}

// Len returns the number of indexed (rated) movies.
func (c *CollaborativeIndex) Len() int {
	return len(c.ids)
}

// Contains reports whether the movie has ratings.
func (c *CollaborativeIndex) Contains(id int) bool {
	_, ok := c.index[id]
	return ok
}

// similarity returns the cosine similarity of two rated movies.
func (c *CollaborativeIndex) similarity(a, b int) (float64, error) {
	ia, ok := c.index[a]
	if !ok {
		return 0, c.notIndexed(a)
	}
	ib, ok := c.index[b]
	if !ok {
		return 0, c.notIndexed(b)
	}
	return c.sims[ia*len(c.ids)+ib], nil
}

// Nearest returns up to k rated movies most similar to id. Candidates
// rejected by filter are dropped after ranking and before truncation, so the
// result never depends on how many candidates were ranked upstream.
//
// A movie without ratings yields an error matching both ErrNoRatings and
// models.ErrNotFound; callers fall back rather than fail.
func (c *CollaborativeIndex) Nearest(ctx context.Context, id, k int, filter Filter) ([]Scored, error) {
	qi, ok := c.index[id]
	if !ok {
		return nil, c.notIndexed(id)
	}
	if k <= 0 {
		return []Scored{}, nil
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	n := len(c.ids)
	row := c.sims[qi*n : (qi+1)*n]

	candidates := make([]Scored, 0, n)
	for j, other := range c.ids {
		if j == qi {
			continue
		}
		if filter != nil && !filter(other) {
			continue
		}
		candidates = append(candidates, Scored{ID: other, Score: row[j]})
	}

	return rankNeighbors(candidates, k), nil
}

func (c *CollaborativeIndex) notIndexed(id int) error {
	return fmt.Errorf("collaborative index: movie %d: %w: %w", id, ErrNoRatings, models.ErrNotFound)
}
