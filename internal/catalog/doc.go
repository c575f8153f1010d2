// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package catalog implements the in-memory movie catalog.
//
// A Catalog is built once from tabular rows with Load and is read-only
// afterwards, so it is safe for concurrent use without locking.
//
// # Columns
//
// Required columns are id, title, genres, director, overview, rating and
// year, plus cast as either a single "cast" column (pipe or comma
// separated) or up to three "cast1".."cast3" columns. Column names are
// normalized and the IMDB export headers (Movie_ID, Series_Title, Genre,
// IMDB_Rating, Released_Year, Star1..Star3) are accepted as aliases.
//
// # Title Lookup
//
// ByTitle matches case-insensitively and returns the first movie in load
// order when several share a title. TitleMatches exposes the match count
// so callers can surface the ambiguity.
package catalog
