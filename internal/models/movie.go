// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package models

import (
	"strings"
)

// MaxCastMembers is the number of leading cast names kept per movie.
const MaxCastMembers = 3

// Row is one record of loosely typed tabular input, keyed by column name.
// Loaders produce rows; the catalog and rating packages turn them into
// typed records once, at load time.
type Row map[string]string

// Movie is a single catalog entry. Movies are immutable once loaded.
type Movie struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Genres   []string `json:"genres"`
	Director string   `json:"director"`
	Cast     []string `json:"cast"`
	Overview string   `json:"overview"`
	Rating   float64  `json:"rating"`
	Year     int      `json:"year"`
}

// HasGenre reports whether the movie carries the genre (case-insensitive).
// A blank genre matches every movie.
func (m *Movie) HasGenre(genre string) bool {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return true
	}
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// GenreLabel joins the genres for display.
func (m *Movie) GenreLabel() string {
	return strings.Join(m.Genres, ", ")
}

// Rating is one (user, movie, score) triple.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Recommendation is one row of a recommendation result.
type Recommendation struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	Rating float64 `json:"rating"`
	Year   int     `json:"year"`
	Score  float64 `json:"score"`
}

// NewRecommendation builds a result row for a movie.
func NewRecommendation(m *Movie, score float64) Recommendation {
	return Recommendation{
		ID:     m.ID,
		Title:  m.Title,
		Genre:  m.GenreLabel(),
		Rating: m.Rating,
		Year:   m.Year,
		Score:  score,
	}
}
