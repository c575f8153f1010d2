// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package dataset reads catalog and rating tables into untyped rows for the
// recommendation engine.
//
// Two loaders are provided:
//
//   - csv: encoding/csv over local files
//   - duckdb: an in-memory DuckDB instance reading the same files through
//     read_csv_auto, which sniffs delimiters and quoting
//
// Both return every cell as a string; typing and column validation happen
// when the engine builds a snapshot. The ratings path is optional; without
// it the engine serves content similarity and the collaborative fallback.
package dataset
