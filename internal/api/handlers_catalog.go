// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend"
)

const (
	defaultMovieListLimit = 20
	maxMovieListLimit     = 100
)

// moviesRequest holds the validated query parameters of GET /api/v1/movies.
type moviesRequest struct {
	Genre string `validate:"max=100"`
	Limit int    `validate:"min=1,max=100"`
}

// snapshotOrUnavailable returns the published snapshot, or writes a 503
// and returns nil.
func (h *Handler) snapshotOrUnavailable(w http.ResponseWriter) *recommend.Snapshot {
	snap := h.engine.Snapshot()
	if snap == nil {
		respondEngineError(w, models.ErrNotReady)
	}
	return snap
}

// Movies handles GET /api/v1/movies. It lists the top rated movies,
// optionally restricted to a genre.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	limit, perr := getIntParam(r, "limit", defaultMovieListLimit)
	if perr != nil {
		respondParamError(w, perr)
		return
	}

	req := moviesRequest{
		Genre: strings.TrimSpace(r.URL.Query().Get("genre")),
		Limit: limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	snap := h.snapshotOrUnavailable(w)
	if snap == nil {
		return
	}

	movies := snap.Catalog.TopRated(req.Genre, req.Limit)
	respondSuccess(w, models.MovieList{
		Genre:  req.Genre,
		Limit:  req.Limit,
		Total:  len(snap.Catalog.FilterByGenre(req.Genre)),
		Movies: movies,
	}, models.Metadata{SnapshotVersion: snap.Version})
}

// Movie handles GET /api/v1/movies/{id}.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_MOVIE_ID", "Movie ID must be an integer", nil)
		return
	}

	snap := h.snapshotOrUnavailable(w)
	if snap == nil {
		return
	}

	movie, err := snap.Movie(id)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, movie, models.Metadata{SnapshotVersion: snap.Version})
}

// Genres handles GET /api/v1/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshotOrUnavailable(w)
	if snap == nil {
		return
	}

	genres := snap.Catalog.Genres()
	respondSuccess(w, models.GenreList{
		Genres: genres,
		Count:  len(genres),
	}, models.Metadata{SnapshotVersion: snap.Version})
}
