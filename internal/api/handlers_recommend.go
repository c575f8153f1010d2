// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/movieai/internal/logging"
	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations.
//
// Query parameters:
//   - movie_id or title: the query movie (both absent returns top rated)
//   - strategy: content, collaborative or hybrid
//   - k: number of results
//   - genre: restrict results to a genre
//   - weight_content, weight_collab: hybrid fusion weights
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, perr := parseRecommendRequest(r)
	if perr != nil {
		respondParamError(w, perr)
		return
	}

	strategy, err := recommend.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	req.Strategy = strategy
	req.RequestID = logging.RequestIDFromContext(r.Context())

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("strategy", resp.Metadata.Strategy.String()).
		Str("resolution", string(resp.Metadata.Resolution.Kind)).
		Int("returned", len(resp.Items)).
		Bool("cached", resp.Metadata.CacheHit).
		Msg("recommendation served")

	respondSuccess(w, resp, models.Metadata{
		Timestamp:       time.Now(),
		QueryTimeMS:     resp.Metadata.LatencyMS,
		Cached:          resp.Metadata.CacheHit,
		SnapshotVersion: resp.Metadata.SnapshotVersion,
	})
}

// parseRecommendRequest reads the query string into a request. Strategy is
// parsed separately because its error is a validation error, not a
// malformed parameter.
func parseRecommendRequest(r *http.Request) (recommend.Request, *paramError) {
	q := r.URL.Query()
	req := recommend.Request{
		Title: q.Get("title"),
		Genre: q.Get("genre"),
	}

	var perr *paramError
	if req.MovieID, perr = getOptionalIntParam(r, "movie_id"); perr != nil {
		return req, perr
	}
	if req.K, perr = getIntParam(r, "k", 0); perr != nil {
		return req, perr
	}
	if req.WeightContent, perr = getOptionalFloatParam(r, "weight_content"); perr != nil {
		return req, perr
	}
	if req.WeightCollab, perr = getOptionalFloatParam(r, "weight_collab"); perr != nil {
		return req, perr
	}
	return req, nil
}
