// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package middleware provides the HTTP middleware shared by the API router.

  - RequestID: reuses or generates X-Request-ID and stores it, together with
    a fresh correlation ID, in the request context for logging.
  - PrometheusMetrics: records api_requests_total, api_request_duration_seconds
    and api_active_requests, labelled by the chi route pattern so that
    /api/v1/movies/{id} is one series regardless of the id.

Both are chi-compatible (func(http.Handler) http.Handler):

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
