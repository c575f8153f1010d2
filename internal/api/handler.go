// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"context"
	"time"

	"github.com/tomtom215/movieai/internal/recommend"
)

// Engine is the part of *recommend.Engine the handlers use.
type Engine interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Snapshot() *recommend.Snapshot
	Ready() bool
	Status() recommend.BuildStatus
	GetMetrics() recommend.Metrics
}

// Reloader rebuilds the engine snapshot on demand. It is implemented by the
// reload service so that admin reloads share its rate limit and logging.
type Reloader interface {
	Reload(ctx context.Context, trigger string) (*recommend.Snapshot, error)
}

// Handler serves the HTTP endpoints.
type Handler struct {
	engine    Engine
	reloader  Reloader
	version   string
	startTime time.Time
}

// NewHandler creates a handler. reloader may be nil, in which case the admin
// reload endpoint is not registered.
func NewHandler(engine Engine, reloader Reloader, version string) *Handler {
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:    engine,
		reloader:  reloader,
		version:   version,
		startTime: time.Now(),
	}
}

// ReloadEnabled reports whether the admin reload endpoint is available.
func (h *Handler) ReloadEnabled() bool {
	return h.reloader != nil
}
