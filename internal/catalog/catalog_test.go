// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/movieai/internal/models"
)

func movieRow(id, title, genres, rating string) models.Row {
	return models.Row{
		"id":       id,
		"title":    title,
		"genres":   genres,
		"director": "Some Director",
		"cast":     "A|B",
		"overview": "An overview.",
		"rating":   rating,
		"year":     "2000",
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load([]models.Row{
		movieRow("1", "X", "Drama", "8.0"),
		movieRow("2", "Y", "Drama", "7.0"),
		movieRow("3", "Z", "Comedy", "9.0"),
		movieRow("4", "W", "Drama, Comedy", "8.0"),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestLoad(t *testing.T) {
	t.Run("parses typed fields", func(t *testing.T) {
		c, err := Load([]models.Row{{
			"id":       "10",
			"title":    " Inception ",
			"genres":   "Action, Sci-Fi|action",
			"director": "Christopher Nolan",
			"cast1":    "Leonardo DiCaprio",
			"cast2":    "",
			"cast3":    "Elliot Page",
			"overview": "Dreams.",
			"rating":   "8.8",
			"year":     "2010",
		}})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		m, err := c.ByID(10)
		if err != nil {
			t.Fatalf("ByID() error = %v", err)
		}

		want := models.Movie{
			ID:       10,
			Title:    "Inception",
			Genres:   []string{"Action", "Sci-Fi"},
			Director: "Christopher Nolan",
			Cast:     []string{"Leonardo DiCaprio", "Elliot Page"},
			Overview: "Dreams.",
			Rating:   8.8,
			Year:     2010,
		}
		if diff := cmp.Diff(want, *m); diff != "" {
			t.Errorf("movie mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("accepts IMDB export headers", func(t *testing.T) {
		c, err := Load([]models.Row{{
			"Movie_ID":      "1",
			"Series_Title":  "The Godfather",
			"Genre":         "Crime, Drama",
			"Director":      "Francis Ford Coppola",
			"Star1":         "Marlon Brando",
			"Star2":         "Al Pacino",
			"Star3":         "James Caan",
			"Overview":      "A crime family.",
			"IMDB_Rating":   "9.2",
			"Released_Year": "1972",
		}})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		m, err := c.ByTitle("the godfather")
		if err != nil {
			t.Fatalf("ByTitle() error = %v", err)
		}
		if m.Year != 1972 || m.Rating != 9.2 || len(m.Cast) != 3 {
			t.Errorf("movie = %+v, fields not mapped", m)
		}
	})

	t.Run("caps cast at three", func(t *testing.T) {
		row := movieRow("1", "X", "Drama", "8")
		row["cast"] = "a, b, c, d"
		c, err := Load([]models.Row{row})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		m, _ := c.ByID(1)
		if len(m.Cast) != 3 {
			t.Errorf("len(Cast) = %d, want 3", len(m.Cast))
		}
	})

	t.Run("blank numeric fields load as zero", func(t *testing.T) {
		row := movieRow("1", "X", "Drama", "")
		row["year"] = ""
		c, err := Load([]models.Row{row})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		m, _ := c.ByID(1)
		if m.Rating != 0 || m.Year != 0 {
			t.Errorf("Rating, Year = %v, %v, want 0, 0", m.Rating, m.Year)
		}
	})

	t.Run("non-numeric year is a warning", func(t *testing.T) {
		row := movieRow("1", "X", "Drama", "7")
		row["year"] = "PG"
		c, err := Load([]models.Row{row})
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(c.Warnings()) != 1 {
			t.Errorf("len(Warnings()) = %d, want 1", len(c.Warnings()))
		}
	})

	t.Run("empty input yields empty catalog", func(t *testing.T) {
		c, err := Load(nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("Len() = %d, want 0", c.Len())
		}
	})
}

func TestLoad_SchemaErrors(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(models.Row)
		wantColumn string
	}{
		{"missing title", func(r models.Row) { delete(r, "title") }, "title"},
		{"missing overview", func(r models.Row) { delete(r, "overview") }, "overview"},
		{"missing cast", func(r models.Row) { delete(r, "cast") }, "cast"},
		{"bad id", func(r models.Row) { r["id"] = "abc" }, "id"},
		{"bad rating", func(r models.Row) { r["rating"] = "high" }, "rating"},
		{"empty title", func(r models.Row) { r["title"] = "  " }, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := movieRow("1", "A", "Drama", "7")
			bad := movieRow("2", "B", "Drama", "7")
			tt.modify(bad)

			c, err := Load([]models.Row{good, bad})
			if c != nil {
				t.Error("Load() returned a partial catalog")
			}

			var se *models.SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("Load() error = %v, want *SchemaError", err)
			}
			if se.Column != tt.wantColumn {
				t.Errorf("Column = %q, want %q", se.Column, tt.wantColumn)
			}
			if se.Row != 2 {
				t.Errorf("Row = %d, want 2", se.Row)
			}
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Load([]models.Row{movieRow("1", "A", "Drama", "7"), movieRow("1", "B", "Drama", "7")})
		if !models.IsSchemaError(err) {
			t.Errorf("Load() error = %v, want SchemaError", err)
		}
	})
}

func TestCatalog_ByID(t *testing.T) {
	c := testCatalog(t)

	if m, err := c.ByID(3); err != nil || m.Title != "Z" {
		t.Errorf("ByID(3) = %v, %v, want Z", m, err)
	}
	if _, err := c.ByID(99); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("ByID(99) error = %v, want ErrNotFound", err)
	}
}

func TestCatalog_ByTitle(t *testing.T) {
	c, err := Load([]models.Row{
		movieRow("5", "Solaris", "Drama", "8.1"),
		movieRow("2", "Heat", "Crime", "8.3"),
		movieRow("9", "SOLARIS", "Sci-Fi", "6.2"),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m, err := c.ByTitle("solaris")
	if err != nil {
		t.Fatalf("ByTitle() error = %v", err)
	}
	if m.ID != 5 {
		t.Errorf("ByTitle(solaris).ID = %d, want 5 (first in load order)", m.ID)
	}
	if n := c.TitleMatches("Solaris"); n != 2 {
		t.Errorf("TitleMatches() = %d, want 2", n)
	}
	if _, err := c.ByTitle("Sola"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("ByTitle(Sola) error = %v, want ErrNotFound (exact match only)", err)
	}
}

func TestCatalog_FilterByGenre(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		genre   string
		wantIDs []int
	}{
		{"Drama", []int{1, 2, 4}},
		{"comedy", []int{3, 4}},
		{"", []int{1, 2, 3, 4}},
		{"   ", []int{1, 2, 3, 4}},
		{"Horror", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.genre, func(t *testing.T) {
			got := make([]int, 0)
			for _, m := range c.FilterByGenre(tt.genre) {
				got = append(got, m.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, got); diff != "" {
				t.Errorf("FilterByGenre(%q) mismatch (-want +got):\n%s", tt.genre, diff)
			}
		})
	}
}

func TestCatalog_TopRated(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name    string
		genre   string
		k       int
		exclude []int
		wantIDs []int
	}{
		{"all genres, ties by id", "", 10, nil, []int{3, 1, 4, 2}},
		{"drama excluding self", "Drama", 5, []int{1}, []int{4, 2}},
		{"truncated", "", 2, nil, []int{3, 1}},
		{"zero k", "", 0, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]int, 0)
			for _, m := range c.TopRated(tt.genre, tt.k, tt.exclude...) {
				got = append(got, m.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, got); diff != "" {
				t.Errorf("TopRated() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalog_IDsAndGenres(t *testing.T) {
	c, err := Load([]models.Row{
		movieRow("30", "A", "drama", "1"),
		movieRow("10", "B", "Comedy|Drama", "1"),
		movieRow("20", "C", "Action", "1"),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff([]int{10, 20, 30}, c.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Action", "Comedy", "drama"}, c.Genres()); diff != "" {
		t.Errorf("Genres() mismatch (-want +got):\n%s", diff)
	}
}
