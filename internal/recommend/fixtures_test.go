// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/movieai/internal/models"
)

func movieRow(id, title, genres, director, cast, overview, rating string) models.Row {
	return models.Row{
		"id":       id,
		"title":    title,
		"genres":   genres,
		"director": director,
		"cast":     cast,
		"overview": overview,
		"rating":   rating,
		"year":     "2008",
	}
}

func ratingRow(user, movie, score string) models.Row {
	return models.Row{"user_id": user, "movie_id": movie, "score": score}
}

// testMovies is a small catalog. Movie 5 has no ratings.
func testMovies() []models.Row {
	return []models.Row{
		movieRow("1", "The Dark Knight", "Action, Crime, Drama", "Christopher Nolan", "Christian Bale|Heath Ledger", "Batman fights the Joker to save Gotham", "9.0"),
		movieRow("2", "Inception", "Action, Sci-Fi", "Christopher Nolan", "Leonardo DiCaprio|Elliot Page", "A thief steals secrets through shared dreams", "8.8"),
		movieRow("3", "Interstellar", "Adventure, Drama, Sci-Fi", "Christopher Nolan", "Matthew McConaughey|Anne Hathaway", "Explorers travel through a wormhole to save humanity", "8.6"),
		movieRow("4", "The Notebook", "Drama, Romance", "Nick Cassavetes", "Ryan Gosling|Rachel McAdams", "A poor young man falls in love with a rich young woman", "7.8"),
		movieRow("5", "Superbad", "Comedy", "Greg Mottola", "Jonah Hill|Michael Cera", "Two teens plan one last party before graduation", "7.6"),
		movieRow("6", "Memento", "Mystery, Thriller", "Christopher Nolan", "Guy Pearce|Carrie-Anne Moss", "A man with short term memory loss hunts a killer", "8.4"),
	}
}

func testRatings() []models.Row {
	return []models.Row{
		ratingRow("1", "1", "5"), ratingRow("1", "2", "5"), ratingRow("1", "3", "4"), ratingRow("1", "6", "4"),
		ratingRow("2", "1", "4"), ratingRow("2", "2", "5"), ratingRow("2", "6", "5"),
		ratingRow("3", "3", "5"), ratingRow("3", "4", "4"),
		ratingRow("4", "4", "5"), ratingRow("4", "1", "2"),
		ratingRow("5", "99", "3"), // movie not in catalog
	}
}

// scenarioAMovies is the three-movie catalog with no ratings.
func scenarioAMovies() []models.Row {
	return []models.Row{
		movieRow("1", "X", "Drama", "D1", "A", "first", "8.0"),
		movieRow("2", "Y", "Drama", "D2", "B", "second", "7.0"),
		movieRow("3", "Z", "Comedy", "D3", "C", "third", "9.0"),
	}
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
		cfg.Collaborative.NumWorkers = 2
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t, nil)
	if _, err := e.Load(context.Background(), testMovies(), testRatings()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func itemIDs(items []models.Recommendation) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
