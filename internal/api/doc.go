// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package api provides the HTTP interface of MovieAI.

Routes are served by a Chi router. Every response uses the
models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "..."}}
	{"status": "error", "data": null, "metadata": {...}, "error": {"code": "NOT_FOUND", "message": "..."}}

Endpoints:

	GET  /api/v1/recommendations   similar movies for movie_id or title
	GET  /api/v1/movies            top rated movies, optionally by genre
	GET  /api/v1/movies/{id}       one catalog entry
	GET  /api/v1/genres            distinct genres
	GET  /api/v1/status            snapshot and engine counters
	POST /api/v1/admin/reload      synchronous rebuild from the data source
	GET  /health/live              liveness probe
	GET  /health/ready             readiness probe (503 until a snapshot exists)
	GET  /metrics                  Prometheus metrics

Error Mapping:

Engine errors are mapped to HTTP status codes in one place (respondEngineError):

  - models.ErrInvalidRequest: 400 VALIDATION_ERROR
  - models.ErrNotFound: 404 NOT_FOUND
  - models.ErrBuildInProgress: 409 BUILD_IN_PROGRESS
  - models.ErrReloadThrottled: 429 RELOAD_THROTTLED
  - *models.SchemaError, models.ErrEmptyCatalog: 422
  - models.ErrNotReady: 503 NOT_READY
  - context.DeadlineExceeded: 504 QUERY_TIMEOUT

Middleware:

Requests pass through request ID tagging, real IP extraction, panic
recovery and CORS (go-chi/cors). API routes are additionally rate limited
per client IP (go-chi/httprate) and instrumented with Prometheus metrics.
*/
package api
