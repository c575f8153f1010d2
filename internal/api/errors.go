// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/movieai/internal/models"
)

// errorMapping is the HTTP rendering of an engine error.
type errorMapping struct {
	status  int
	code    string
	message string
}

// mapEngineError translates engine and build errors to status codes.
func mapEngineError(err error) errorMapping {
	var schemaErr *models.SchemaError
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return errorMapping{http.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err)}
	case errors.Is(err, models.ErrNotFound):
		return errorMapping{http.StatusNotFound, "NOT_FOUND", "Movie not found"}
	case errors.Is(err, models.ErrBuildInProgress):
		return errorMapping{http.StatusConflict, "BUILD_IN_PROGRESS", "A rebuild is already running"}
	case errors.Is(err, models.ErrReloadThrottled):
		return errorMapping{http.StatusTooManyRequests, "RELOAD_THROTTLED", "Reload requested too soon after the previous one"}
	case errors.As(err, &schemaErr):
		return errorMapping{http.StatusUnprocessableEntity, "SCHEMA_ERROR", schemaErr.Error()}
	case errors.Is(err, models.ErrEmptyCatalog):
		return errorMapping{http.StatusUnprocessableEntity, "EMPTY_CATALOG", "Catalog contains no movies"}
	case errors.Is(err, models.ErrNotReady):
		return errorMapping{http.StatusServiceUnavailable, "NOT_READY", "Recommendation index is not ready"}
	case errors.Is(err, context.DeadlineExceeded):
		return errorMapping{http.StatusGatewayTimeout, "QUERY_TIMEOUT", "Query timed out"}
	default:
		return errorMapping{http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"}
	}
}

// validationMessage strips the sentinel prefix so clients see only the
// field problem.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := models.ErrInvalidRequest.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// respondEngineError sends the mapped error response for err.
func respondEngineError(w http.ResponseWriter, err error) {
	m := mapEngineError(err)
	respondError(w, m.status, m.code, m.message, err)
}
