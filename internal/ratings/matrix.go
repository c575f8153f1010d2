// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package ratings

import (
	"sort"

	"github.com/tomtom215/movieai/internal/models"
)

// Matrix is a dense user-by-movie rating matrix. It is stored column-major
// because similarity is computed between movie columns. A Matrix is never
// mutated after Build returns.
type Matrix struct {
	users      []int
	movies     []int
	userIndex  map[int]int
	movieIndex map[int]int

	// cols[j][i] is user i's rating of movie j, or 0 if absent.
	cols [][]float64

	ratings int
	dropped int
}

type cellKey struct {
	user, movie int
}

type cellAcc struct {
	sum   float64
	count int
}

// Build creates a matrix from ratings, keeping only movies in catalogIDs.
// Rows and columns are sorted by id.
func Build(ratings []models.Rating, catalogIDs []int) *Matrix {
	known := make(map[int]struct{}, len(catalogIDs))
	for _, id := range catalogIDs {
		known[id] = struct{}{}
	}

	m := &Matrix{
		userIndex:  make(map[int]int),
		movieIndex: make(map[int]int),
	}

	cells := make(map[cellKey]*cellAcc, len(ratings))
	userSet := make(map[int]struct{})
	movieSet := make(map[int]struct{})

	for _, r := range ratings {
		if _, ok := known[r.MovieID]; !ok {
			m.dropped++
			continue
		}
		key := cellKey{user: r.UserID, movie: r.MovieID}
		acc := cells[key]
		if acc == nil {
			acc = &cellAcc{}
			cells[key] = acc
		}
		acc.sum += r.Score
		acc.count++
		userSet[r.UserID] = struct{}{}
		movieSet[r.MovieID] = struct{}{}
	}

	m.users = sortedKeys(userSet)
	m.movies = sortedKeys(movieSet)
	for i, id := range m.users {
		m.userIndex[id] = i
	}
	for j, id := range m.movies {
		m.movieIndex[id] = j
	}

	m.cols = make([][]float64, len(m.movies))
	for j := range m.cols {
		m.cols[j] = make([]float64, len(m.users))
	}
	for key, acc := range cells {
		m.cols[m.movieIndex[key.movie]][m.userIndex[key.user]] = acc.sum / float64(acc.count)
	}
	m.ratings = len(cells)

	return m
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Users returns user ids in row order. The slice must not be modified.
func (m *Matrix) Users() []int { return m.users }

// Movies returns movie ids in column order. The slice must not be modified.
func (m *Matrix) Movies() []int { return m.movies }

// NumUsers returns the row count.
func (m *Matrix) NumUsers() int { return len(m.users) }

// NumMovies returns the column count.
func (m *Matrix) NumMovies() int { return len(m.movies) }

// Empty reports whether the matrix has no ratings.
func (m *Matrix) Empty() bool { return m.ratings == 0 }

// Ratings returns the number of populated cells.
func (m *Matrix) Ratings() int { return m.ratings }

// Dropped returns how many input ratings referenced unknown movies.
func (m *Matrix) Dropped() int { return m.dropped }

// Column returns the rating vector of the j-th movie. The slice must not be modified.
func (m *Matrix) Column(j int) []float64 { return m.cols[j] }

// columnOf returns the column of a movie id.
func (m *Matrix) columnOf(movieID int) (int, bool) {
	j, ok := m.movieIndex[movieID]
	return j, ok
}

// rating returns a user's rating of a movie and whether it exists.
func (m *Matrix) rating(userID, movieID int) (float64, bool) {
	i, ok := m.userIndex[userID]
	if !ok {
		return 0, false
	}
	j, ok := m.movieIndex[movieID]
	if !ok {
		return 0, false
	}
	v := m.cols[j][i]
	return v, v != 0
}
