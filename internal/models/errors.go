// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine. Callers match them with errors.Is.
var (
	// ErrNotFound reports an unknown movie id or title.
	ErrNotFound = errors.New("not found")

	// ErrNotReady reports a query against an engine with no published snapshot.
	ErrNotReady = errors.New("recommendation index not ready")

	// ErrEmptyCatalog reports a build over a catalog without movies.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrInvalidRequest reports a malformed query (bad k, strategy or weights).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBuildInProgress reports a rebuild attempted while another is running.
	ErrBuildInProgress = errors.New("build already in progress")

	// ErrReloadThrottled reports a reload requested sooner than the minimum
	// gap after the previous one.
	ErrReloadThrottled = errors.New("reload throttled")
)

// SchemaError reports malformed or missing input columns. A load that
// returns a SchemaError produces no partial result.
type SchemaError struct {
	// Row is the 1-based data row, or 0 for header-level problems.
	Row int

	// Column is the normalized column name.
	Column string

	// Reason describes what is wrong.
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema error: row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
