// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package recommend

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/movieai/internal/catalog"
	"github.com/tomtom215/movieai/internal/metrics"
	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/ratings"
	"github.com/tomtom215/movieai/internal/recommend/algorithms"
)

// Snapshot is one consistent, fully built set of indices. It is never
// mutated after BuildSnapshot returns, so any number of queries may share it.
type Snapshot struct {
	// Version is assigned when the snapshot is published. Zero means unpublished.
	Version int64

	// BuiltAt is when the build finished.
	BuiltAt time.Time

	// BuildDuration is how long the build took.
	BuildDuration time.Duration

	Catalog       *catalog.Catalog
	Matrix        *ratings.Matrix
	Content       *algorithms.ContentIndex
	Collaborative *algorithms.CollaborativeIndex
}

// BuildSnapshot loads the catalog and ratings, then builds the content and
// collaborative indices in parallel. It fails with a *models.SchemaError for
// malformed rows and with models.ErrEmptyCatalog when there are no movies.
// Cancelling ctx aborts the build.
func BuildSnapshot(ctx context.Context, cfg *Config, movieRows, ratingRows []models.Row) (*Snapshot, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	start := time.Now()

	cat, err := catalog.Load(movieRows)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if cat.Len() == 0 {
		return nil, models.ErrEmptyCatalog
	}

	parsed, err := ratings.Parse(ratingRows)
	if err != nil {
		return nil, fmt.Errorf("parse ratings: %w", err)
	}
	matrix := ratings.Build(parsed, cat.IDs())

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	var (
		content *algorithms.ContentIndex
		collab  *algorithms.CollaborativeIndex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx, err := algorithms.BuildContentIndex(gctx, cat.Movies(), cfg.contentIndexConfig())
		if err != nil {
			return fmt.Errorf("build content index: %w", err)
		}
		content = idx
		return nil
	})
	g.Go(func() error {
		idx, err := algorithms.BuildCollaborativeIndex(gctx, matrix, cfg.collaborativeIndexConfig())
		if err != nil {
			return fmt.Errorf("build collaborative index: %w", err)
		}
		collab = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		BuiltAt:       time.Now(),
		BuildDuration: time.Since(start),
		Catalog:       cat,
		Matrix:        matrix,
		Content:       content,
		Collaborative: collab,
	}, nil
}

// Stats returns the sizes reported to metrics.
func (s *Snapshot) Stats() metrics.SnapshotStats {
	return metrics.SnapshotStats{
		Version:       s.Version,
		Movies:        s.Catalog.Len(),
		RatedMovies:   s.Collaborative.Len(),
		Users:         s.Matrix.NumUsers(),
		OrphanRatings: s.Matrix.Dropped(),
	}
}

// Movie returns the catalog entry for id.
func (s *Snapshot) Movie(id int) (*models.Movie, error) {
	return s.Catalog.ByID(id)
}
