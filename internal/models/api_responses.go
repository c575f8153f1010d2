// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" or "error". Data carries the payload on success and
// Error carries the failure on error.
//
//	{
//	  "status": "success",
//	  "data": {"items": [...]},
//	  "metadata": {"timestamp": "2026-01-03T12:00:00Z", "query_time_ms": 3}
//	}
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-01-03T12:00:00Z"},
//	  "error": {"code": "NOT_FOUND", "message": "Movie not found"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`

	// SnapshotVersion is the snapshot that answered the request, when one did.
	SnapshotVersion int64 `json:"snapshot_version,omitempty"`
}

// APIError is the error body of a failed request.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the liveness and readiness probes.
type HealthStatus struct {
	Status          string     `json:"status"`
	Version         string     `json:"version"`
	Ready           bool       `json:"ready"`
	SnapshotVersion int64      `json:"snapshot_version,omitempty"`
	LastBuildAt     *time.Time `json:"last_build_at,omitempty"`
	Uptime          float64    `json:"uptime_seconds"`
}

// MovieList is a page of movies from the catalog.
type MovieList struct {
	Genre  string   `json:"genre,omitempty"`
	Limit  int      `json:"limit"`
	Total  int      `json:"total"`
	Movies []*Movie `json:"movies"`
}

// GenreList is the sorted list of distinct genres in the catalog.
type GenreList struct {
	Genres []string `json:"genres"`
	Count  int      `json:"count"`
}
