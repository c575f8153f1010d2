// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"github.com/tomtom215/movieai/internal/recommend"
)

var (
	colorBorder = lipgloss.Color("#374151") // gray-700
	colorMuted  = lipgloss.Color("#9ca3af") // gray-400

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// numeric columns are right aligned
var numericColumns = map[int]bool{0: true, 1: true, 3: true, 5: true, 6: true}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRecommendations prints results as a table followed by a one-line
// summary of how the query was answered.
func writeRecommendations(w io.Writer, resp *recommend.Response) error {
	meta := resp.Metadata
	if len(resp.Items) == 0 {
		if _, err := fmt.Fprintln(w, "No recommendations."); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, footerStyle.Render(summary(meta)))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numericColumns[col]:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Headers("#", "ID", "Title", "Year", "Genre", "Rating", "Score")

	for i, item := range resp.Items {
		year := "-"
		if item.Year > 0 {
			year = strconv.Itoa(item.Year)
		}
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(item.ID),
			item.Title,
			year,
			item.Genre,
			strconv.FormatFloat(item.Rating, 'f', 1, 64),
			strconv.FormatFloat(item.Score, 'f', 4, 64),
		)
	}

	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, footerStyle.Render(summary(meta)))
	return err
}

func summary(meta recommend.ResponseMetadata) string {
	s := fmt.Sprintf("strategy=%s %s snapshot=%d latency=%dms",
		meta.Strategy, resolutionLabel(meta.Resolution), meta.SnapshotVersion, meta.LatencyMS)
	if meta.Genre != "" {
		s += " genre=" + meta.Genre
	}
	if meta.Weights != nil {
		s += fmt.Sprintf(" weights=%g/%g", meta.Weights.Content, meta.Weights.Collab)
	}
	return s
}

func resolutionLabel(r recommend.Resolution) string {
	if r.IsFallback() {
		return "resolution=fallback(" + string(r.Reason) + ")"
	}
	label := "resolution=" + r.Index
	if r.Reason != "" {
		label += "(collaborative " + string(r.Reason) + ")"
	}
	return label
}
