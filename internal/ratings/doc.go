// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package ratings parses rating rows and builds the dense user-by-movie
// rating matrix consumed by the collaborative similarity index.
//
// Users and movies are ordered by ascending id, so two builds from the same
// input produce identical matrices. A zero cell means "not rated"; it is not
// a score. Ratings for movies outside the catalog are dropped and counted,
// and repeated (user, movie) pairs are averaged.
package ratings
