// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/movieai/internal/models"
)

// Canonical column names.
const (
	ColID       = "id"
	ColTitle    = "title"
	ColGenres   = "genres"
	ColDirector = "director"
	ColCast     = "cast"
	ColOverview = "overview"
	ColRating   = "rating"
	ColYear     = "year"
)

// requiredColumns are checked on every row, in this order.
var requiredColumns = []string{ColID, ColTitle, ColGenres, ColDirector, ColOverview, ColRating, ColYear}

// castColumns are the positional cast columns.
var castColumns = []string{"cast1", "cast2", "cast3"}

// columnAliases maps alternative header names onto canonical columns.
var columnAliases = map[string]string{
	"movie_id":      ColID,
	"series_title":  ColTitle,
	"name":          ColTitle,
	"genre":         ColGenres,
	"imdb_rating":   ColRating,
	"released_year": ColYear,
	"star1":         "cast1",
	"star2":         "cast2",
	"star3":         "cast3",
	"stars":         ColCast,
}

// Catalog is an immutable, indexed set of movies.
type Catalog struct {
	movies   []models.Movie
	byID     map[int]int
	byTitle  map[string][]int
	ids      []int
	genres   []string
	warnings []string
}

// Load validates rows and builds a Catalog. Any malformed row fails the whole
// load with a *models.SchemaError; no partial catalog is returned.
//
// Blank rating and year values load as 0. A year that is not an integer also
// loads as 0 and is reported through Warnings, since public exports carry
// such values (for example "PG" in a year column).
func Load(rows []models.Row) (*Catalog, error) {
	c := &Catalog{
		movies:  make([]models.Movie, 0, len(rows)),
		byID:    make(map[int]int, len(rows)),
		byTitle: make(map[string][]int, len(rows)),
	}

	genreSeen := make(map[string]bool)

	for i, raw := range rows {
		rowNum := i + 1
		row := raw.Normalize(columnAliases)

		m, warn, err := parseMovie(rowNum, row)
		if err != nil {
			return nil, err
		}
		if warn != "" {
			c.warnings = append(c.warnings, warn)
		}

		if _, dup := c.byID[m.ID]; dup {
			return nil, &models.SchemaError{Row: rowNum, Column: ColID, Reason: fmt.Sprintf("duplicate movie id %d", m.ID)}
		}

		idx := len(c.movies)
		c.movies = append(c.movies, m)
		c.byID[m.ID] = idx
		key := titleKey(m.Title)
		c.byTitle[key] = append(c.byTitle[key], idx)
		c.ids = append(c.ids, m.ID)

		for _, g := range m.Genres {
			lg := strings.ToLower(g)
			if !genreSeen[lg] {
				genreSeen[lg] = true
				c.genres = append(c.genres, g)
			}
		}
	}

	sort.Ints(c.ids)
	sort.Slice(c.genres, func(i, j int) bool {
		return strings.ToLower(c.genres[i]) < strings.ToLower(c.genres[j])
	})

	return c, nil
}

// parseMovie converts one normalized row into a Movie.
func parseMovie(rowNum int, row models.Row) (models.Movie, string, error) {
	for _, col := range requiredColumns {
		if _, ok := row[col]; !ok {
			return models.Movie{}, "", &models.SchemaError{Row: rowNum, Column: col, Reason: "missing required column"}
		}
	}

	var m models.Movie
	var warning string

	idStr, _ := row.Get(ColID)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return m, "", &models.SchemaError{Row: rowNum, Column: ColID, Reason: fmt.Sprintf("invalid integer %q", idStr)}
	}
	m.ID = id

	m.Title, _ = row.Get(ColTitle)
	if m.Title == "" {
		return m, "", &models.SchemaError{Row: rowNum, Column: ColTitle, Reason: "empty title"}
	}

	genres, _ := row.Get(ColGenres)
	m.Genres = splitList(genres)
	m.Director, _ = row.Get(ColDirector)
	m.Overview, _ = row.Get(ColOverview)

	cast, err := parseCast(rowNum, row)
	if err != nil {
		return m, "", err
	}
	m.Cast = cast

	if ratingStr, _ := row.Get(ColRating); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return m, "", &models.SchemaError{Row: rowNum, Column: ColRating, Reason: fmt.Sprintf("invalid number %q", ratingStr)}
		}
		m.Rating = rating
	}

	if yearStr, _ := row.Get(ColYear); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			warning = fmt.Sprintf("row %d: movie %d has non-numeric year %q", rowNum, m.ID, yearStr)
		} else {
			m.Year = year
		}
	}

	return m, warning, nil
}

// parseCast reads either the combined cast column or the positional ones.
func parseCast(rowNum int, row models.Row) ([]string, error) {
	var cast []string
	found := false

	if v, ok := row.Get(ColCast); ok {
		found = true
		cast = append(cast, splitList(v)...)
	}
	for _, col := range castColumns {
		if v, ok := row.Get(col); ok {
			found = true
			if v != "" {
				cast = append(cast, v)
			}
		}
	}

	if !found {
		return nil, &models.SchemaError{Row: rowNum, Column: ColCast, Reason: "missing required column (cast or cast1..cast3)"}
	}
	if len(cast) > models.MaxCastMembers {
		cast = cast[:models.MaxCastMembers]
	}
	return cast, nil
}

// splitList splits a comma or pipe separated list, dropping blanks and
// case-insensitive duplicates.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[strings.ToLower(p)] {
			continue
		}
		seen[strings.ToLower(p)] = true
		out = append(out, p)
	}
	return out
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// ByID returns the movie with the given id.
func (c *Catalog) ByID(id int) (*models.Movie, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("movie id %d: %w", id, models.ErrNotFound)
	}
	return &c.movies[idx], nil
}

// Contains reports whether the id is in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// ByTitle returns the first movie, in load order, whose title matches
// case-insensitively.
func (c *Catalog) ByTitle(title string) (*models.Movie, error) {
	matches := c.byTitle[titleKey(title)]
	if len(matches) == 0 {
		return nil, fmt.Errorf("movie title %q: %w", title, models.ErrNotFound)
	}
	return &c.movies[matches[0]], nil
}

// TitleMatches returns how many movies share the title.
func (c *Catalog) TitleMatches(title string) int {
	return len(c.byTitle[titleKey(title)])
}

// FilterByGenre returns movies carrying the genre, in load order.
// A blank genre returns every movie.
func (c *Catalog) FilterByGenre(genre string) []*models.Movie {
	out := make([]*models.Movie, 0, len(c.movies))
	for i := range c.movies {
		if c.movies[i].HasGenre(genre) {
			out = append(out, &c.movies[i])
		}
	}
	return out
}

// TopRated returns up to k movies carrying the genre, ordered by rating
// descending with ties broken by lower id. Ids in exclude are skipped.
func (c *Catalog) TopRated(genre string, k int, exclude ...int) []*models.Movie {
	if k <= 0 {
		return nil
	}

	skip := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	candidates := c.FilterByGenre(genre)
	out := candidates[:0]
	for _, m := range candidates {
		if !skip[m.ID] {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}

// IDs returns all movie ids in ascending order. The slice must not be modified.
func (c *Catalog) IDs() []int {
	return c.ids
}

// Movies returns all movies in load order.
func (c *Catalog) Movies() []*models.Movie {
	out := make([]*models.Movie, len(c.movies))
	for i := range c.movies {
		out[i] = &c.movies[i]
	}
	return out
}

// Genres returns the distinct genres, sorted case-insensitively.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// Warnings returns non-fatal load problems.
func (c *Catalog) Warnings() []string {
	return c.warnings
}
