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
)

// TriggerReload is the reload trigger name recorded for admin requests.
const TriggerReload = "api"

// reloadResult describes the snapshot published by an admin reload.
type reloadResult struct {
	SnapshotVersion int64     `json:"snapshot_version"`
	BuiltAt         time.Time `json:"built_at"`
	BuildDurationMS int64     `json:"build_duration_ms"`
	Movies          int       `json:"movies"`
	RatedMovies     int       `json:"rated_movies"`
	Users           int       `json:"users"`
	DroppedRatings  int       `json:"dropped_ratings"`
}

// Reload handles POST /api/v1/admin/reload. The rebuild runs synchronously;
// on failure the previous snapshot keeps serving.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	start := time.Now()
	snap, err := h.reloader.Reload(r.Context(), TriggerReload)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	stats := snap.Stats()
	logging.Ctx(r.Context()).Info().
		Int64("version", snap.Version).
		Int("movies", stats.Movies).
		Msg("snapshot reloaded via API")

	respondSuccess(w, reloadResult{
		SnapshotVersion: snap.Version,
		BuiltAt:         snap.BuiltAt,
		BuildDurationMS: snap.BuildDuration.Milliseconds(),
		Movies:          stats.Movies,
		RatedMovies:     stats.RatedMovies,
		Users:           stats.Users,
		DroppedRatings:  stats.OrphanRatings,
	}, models.Metadata{
		QueryTimeMS:     time.Since(start).Milliseconds(),
		SnapshotVersion: snap.Version,
	})
}
