// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package logging provides the zerolog-based structured logging used by
// every MovieAI component.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("port", 8080).Msg("server starting")
//	logging.Error().Err(err).Msg("snapshot build failed")
//
// # Component Loggers
//
// Components derive child loggers once and keep them:
//
//	logger := logging.WithComponent("reload")
//	logger.Info().Str("trigger", "watch").Msg("rebuild requested")
//
// # Context-Aware Logging
//
// The API stores the request ID in the request context and the reload
// service stores a correlation ID per rebuild. Ctx attaches both:
//
//	logging.Ctx(ctx).Info().Msg("recommendation served")
//	// {"level":"info","request_id":"...","message":"recommendation served"}
//
// # slog Adapter
//
// sutureslog reports supervisor events through slog. NewSlogLogger routes
// those into the same zerolog stream:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Output Formats
//
// JSON (default):
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"server starting","port":8080}
//
// Console:
//
//	10:30:00 INF server starting port=8080
//
// All exported functions are safe for concurrent use.
package logging
