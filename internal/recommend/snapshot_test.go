// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/movieai/internal/models"
)

func TestBuildSnapshot(t *testing.T) {
	snap, err := BuildSnapshot(context.Background(), nil, testMovies(), testRatings())
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	if snap.Version != 0 {
		t.Errorf("Version = %d, want 0 before publish", snap.Version)
	}
	if snap.Catalog.Len() != 6 {
		t.Errorf("Catalog.Len() = %d, want 6", snap.Catalog.Len())
	}
	if snap.Content.Len() != 6 {
		t.Errorf("Content.Len() = %d, want 6", snap.Content.Len())
	}
	// Movie 5 is unrated and movie 99 is an orphan
	if snap.Collaborative.Len() != 5 {
		t.Errorf("Collaborative.Len() = %d, want 5", snap.Collaborative.Len())
	}
	if snap.Collaborative.Contains(5) {
		t.Error("unrated movie 5 should not be in the collaborative index")
	}
	if snap.Matrix.Dropped() != 1 {
		t.Errorf("Matrix.Dropped() = %d, want 1", snap.Matrix.Dropped())
	}
	if snap.BuiltAt.IsZero() {
		t.Error("BuiltAt not set")
	}

	stats := snap.Stats()
	if stats.Movies != 6 || stats.RatedMovies != 5 || stats.Users != 4 || stats.OrphanRatings != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestBuildSnapshot_Errors(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		_, err := BuildSnapshot(context.Background(), nil, nil, testRatings())
		if !errors.Is(err, models.ErrEmptyCatalog) {
			t.Errorf("error = %v, want ErrEmptyCatalog", err)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		rows := testMovies()
		for _, r := range rows {
			delete(r, "director")
		}
		_, err := BuildSnapshot(context.Background(), nil, rows, nil)
		var schemaErr *models.SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("error = %v, want *SchemaError", err)
		}
		if schemaErr.Column != "director" {
			t.Errorf("Column = %q, want director", schemaErr.Column)
		}
	})

	t.Run("malformed rating", func(t *testing.T) {
		_, err := BuildSnapshot(context.Background(), nil, testMovies(), []models.Row{ratingRow("1", "1", "great")})
		if !models.IsSchemaError(err) {
			t.Errorf("error = %v, want SchemaError", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := BuildSnapshot(ctx, nil, testMovies(), testRatings())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestBuildSnapshot_NoRatings(t *testing.T) {
	snap, err := BuildSnapshot(context.Background(), nil, testMovies(), nil)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if !snap.Matrix.Empty() {
		t.Error("Matrix.Empty() = false, want true")
	}
	if snap.Collaborative.Len() != 0 {
		t.Errorf("Collaborative.Len() = %d, want 0", snap.Collaborative.Len())
	}
}
