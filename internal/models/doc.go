// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package models defines the typed records shared by every layer of MovieAI.

Key Components:

  - Row: loosely typed tabular input as produced by a data source
  - Movie: validated catalog entry (immutable after load)
  - Rating: one (user, movie, score) triple
  - Recommendation: one record of a ranked result

Errors:

The error taxonomy lives here so that the catalog, rating, index and query
layers can share it without import cycles:

  - SchemaError: malformed or missing input columns; fatal to a load
  - ErrNotFound: unknown movie id or title; per query
  - ErrNotReady: no snapshot has been published yet
  - ErrEmptyCatalog: a build over zero movies
  - ErrInvalidRequest: bad k, strategy or weights
  - ErrBuildInProgress: concurrent rebuild rejected
  - ErrReloadThrottled: reload requested inside the minimum reload gap

The HTTP envelope (APIResponse, Metadata, APIError) and the probe and
listing payloads also live here.

An empty result is never an error.
*/
package models
