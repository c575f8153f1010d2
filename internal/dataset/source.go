// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/movieai/internal/metrics"
	"github.com/tomtom215/movieai/internal/models"
)

// Loader names.
const (
	LoaderCSV    = "csv"
	LoaderDuckDB = "duckdb"
)

// Table names used in metrics and errors.
const (
	TableMovies  = "movies"
	TableRatings = "ratings"
)

// Source loads catalog and rating rows.
type Source interface {
	// Load reads both tables. Rating rows are nil when no ratings path is set.
	Load(ctx context.Context) (movies, ratings []models.Row, err error)

	// Paths returns the files the source reads, for change watching.
	Paths() []string

	// Name returns the loader name.
	Name() string

	Close() error
}

// Options configures a Source.
type Options struct {
	// Loader is "csv" or "duckdb". Default: csv.
	Loader string

	// CatalogPath is the movie table. Required.
	CatalogPath string

	// RatingsPath is the rating table. Optional.
	RatingsPath string
}

// New creates the Source selected by opts.Loader.
//
//nolint:gocritic // hugeParam: opts passed by value for simplicity
func New(opts Options) (Source, error) {
	if strings.TrimSpace(opts.CatalogPath) == "" {
		return nil, fmt.Errorf("dataset: catalog path is required")
	}

	switch strings.ToLower(opts.Loader) {
	case "", LoaderCSV:
		return NewCSVSource(opts.CatalogPath, opts.RatingsPath), nil
	case LoaderDuckDB:
		return NewDuckDBSource(opts.CatalogPath, opts.RatingsPath)
	default:
		return nil, fmt.Errorf("dataset: unknown loader %q (want csv or duckdb)", opts.Loader)
	}
}

// tableReader reads one table from path.
type tableReader func(ctx context.Context, path string) ([]models.Row, error)

// loadTables reads the catalog and optional ratings, recording metrics.
func loadTables(ctx context.Context, loader, catalogPath, ratingsPath string, read tableReader) ([]models.Row, []models.Row, error) {
	movies, err := timedRead(ctx, loader, TableMovies, catalogPath, read)
	if err != nil {
		return nil, nil, err
	}
	if ratingsPath == "" {
		return movies, nil, nil
	}

	ratings, err := timedRead(ctx, loader, TableRatings, ratingsPath, read)
	if err != nil {
		return nil, nil, err
	}
	return movies, ratings, nil
}

func timedRead(ctx context.Context, loader, table, path string, read tableReader) ([]models.Row, error) {
	start := time.Now()
	rows, err := read(ctx, path)
	metrics.RecordDatasetLoad(loader, table, len(rows), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read %s table %s: %w", table, path, err)
	}
	return rows, nil
}

func paths(catalogPath, ratingsPath string) []string {
	if ratingsPath == "" {
		return []string{catalogPath}
	}
	return []string{catalogPath, ratingsPath}
}

// Static is an in-memory Source.
type Static struct {
	Movies  []models.Row
	Ratings []models.Row
}

// Load returns the stored rows.
func (s *Static) Load(ctx context.Context) ([]models.Row, []models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return s.Movies, s.Ratings, nil
}

// Paths returns nil; static rows never change on disk.
func (s *Static) Paths() []string { return nil }

// Name returns "static".
func (s *Static) Name() string { return "static" }

// Close is a no-op.
func (s *Static) Close() error { return nil }
