// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package models

import (
	"strings"
)

// NormalizeColumn lower-cases and trims a column name and replaces spaces
// and hyphens with underscores, so "Series Title" and "series_title" match.
func NormalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// Normalize returns a copy of the row with normalized column names, mapping
// known aliases onto their canonical names. When both an alias and its
// canonical column are present, the canonical column wins.
func (r Row) Normalize(aliases map[string]string) Row {
	out := make(Row, len(r))
	canonical := make(map[string]bool, len(r))

	for k, v := range r {
		key := NormalizeColumn(k)
		if target, ok := aliases[key]; ok {
			if !canonical[target] {
				out[target] = v
			}
			continue
		}
		out[key] = v
		canonical[key] = true
	}

	return out
}

// Get returns the trimmed value of a column and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return strings.TrimSpace(v), ok
}
