// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package ratings

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tomtom215/movieai/internal/models"
)

// Canonical column names.
const (
	ColUserID  = "user_id"
	ColMovieID = "movie_id"
	ColScore   = "score"
)

var columnAliases = map[string]string{
	"userid":  ColUserID,
	"user":    ColUserID,
	"movieid": ColMovieID,
	"item_id": ColMovieID,
	"rating":  ColScore,
}

// Parse converts rating rows into typed ratings. Any malformed row fails the
// whole parse with a *models.SchemaError.
func Parse(rows []models.Row) ([]models.Rating, error) {
	out := make([]models.Rating, 0, len(rows))

	for i, raw := range rows {
		rowNum := i + 1
		row := raw.Normalize(columnAliases)

		userID, err := intColumn(rowNum, row, ColUserID)
		if err != nil {
			return nil, err
		}
		movieID, err := intColumn(rowNum, row, ColMovieID)
		if err != nil {
			return nil, err
		}

		v, ok := row.Get(ColScore)
		if !ok {
			return nil, &models.SchemaError{Row: rowNum, Column: ColScore, Reason: "missing required column"}
		}
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, &models.SchemaError{Row: rowNum, Column: ColScore, Reason: fmt.Sprintf("invalid number %q", v)}
		}
		// zero marks an absent cell in the matrix
		if score <= 0 {
			return nil, &models.SchemaError{Row: rowNum, Column: ColScore, Reason: fmt.Sprintf("score must be positive, got %v", score)}
		}

		out = append(out, models.Rating{UserID: userID, MovieID: movieID, Score: score})
	}

	return out, nil
}

func intColumn(rowNum int, row models.Row, col string) (int, error) {
	v, ok := row.Get(col)
	if !ok {
		return 0, &models.SchemaError{Row: rowNum, Column: col, Reason: "missing required column"}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &models.SchemaError{Row: rowNum, Column: col, Reason: fmt.Sprintf("invalid integer %q", v)}
	}
	return n, nil
}
