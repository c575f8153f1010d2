// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created on first use and shared; it caches
// struct metadata and is safe for concurrent use.
//
// # Custom Tags
//
//   - finite: rejects NaN and +/-Inf floats. Combine with gte for weights,
//     since gte alone lets NaN through.
//
// # Error Translation
//
// Failures are returned as *RequestValidationError with one ValidationError
// per field. ToAPIError converts them into the VALIDATION_ERROR shape used by
// the HTTP API:
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "K must be greater than or equal to 0",
//	    "details": {"field": "K", "tag": "gte", "value": -1}
//	}
//
// Multiple failures are joined with "; " and listed under details.fields.
package validation
