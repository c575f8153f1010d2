// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend"
)

// HealthLive handles liveness probe requests. It returns 200 while the
// process can serve HTTP at all.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondSuccess(w, models.HealthStatus{
		Status:  "alive",
		Version: h.version,
		Ready:   h.engine.Ready(),
		Uptime:  time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady handles readiness probe requests. It returns 503 until the
// first snapshot has been published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	health := models.HealthStatus{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	statusCode := http.StatusOK
	responseStatus := "success"
	if snap := h.engine.Snapshot(); snap != nil {
		health.Ready = true
		health.SnapshotVersion = snap.Version
		builtAt := snap.BuiltAt
		health.LastBuildAt = &builtAt
	} else {
		health.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
		responseStatus = "error"
	}

	resp := &models.APIResponse{
		Status:   responseStatus,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now(), SnapshotVersion: health.SnapshotVersion},
	}
	if statusCode != http.StatusOK {
		resp.Error = &models.APIError{Code: "NOT_READY", Message: "Recommendation index is not ready"}
	}
	respondJSON(w, statusCode, resp)
}

// statusResponse is the payload of GET /api/v1/status.
type statusResponse struct {
	Version       string                `json:"version"`
	UptimeSeconds float64               `json:"uptime_seconds"`
	Build         recommend.BuildStatus `json:"build"`
	Engine        recommend.Metrics     `json:"engine"`
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	build := h.engine.Status()
	respondSuccess(w, statusResponse{
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Build:         build,
		Engine:        h.engine.GetMetrics(),
	}, models.Metadata{SnapshotVersion: build.SnapshotVersion})
}
