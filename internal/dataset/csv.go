// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/movieai/internal/models"
)

const utf8BOM = "\ufeff"

// CSVSource reads comma separated files with a header row.
type CSVSource struct {
	catalogPath string
	ratingsPath string
}

// NewCSVSource creates a CSV source. ratingsPath may be empty.
func NewCSVSource(catalogPath, ratingsPath string) *CSVSource {
	return &CSVSource{catalogPath: catalogPath, ratingsPath: ratingsPath}
}

// Load reads the catalog and ratings files.
func (s *CSVSource) Load(ctx context.Context) ([]models.Row, []models.Row, error) {
	return loadTables(ctx, LoaderCSV, s.catalogPath, s.ratingsPath, readCSVFile)
}

// Paths returns the files read by Load.
func (s *CSVSource) Paths() []string { return paths(s.catalogPath, s.ratingsPath) }

// Name returns "csv".
func (s *CSVSource) Name() string { return LoaderCSV }

// Close is a no-op.
func (s *CSVSource) Close() error { return nil }

func readCSVFile(ctx context.Context, path string) ([]models.Row, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(ctx, f)
}

// ReadCSV parses CSV with a header row into rows keyed by header name.
// Every record must have as many fields as the header. A UTF-8 byte order
// mark is stripped from the first header.
func ReadCSV(ctx context.Context, r io.Reader) ([]models.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		columns[i] = strings.TrimSpace(h)
	}

	var rows []models.Row
	for n := 0; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(models.Row, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	if rows == nil {
		rows = []models.Row{}
	}
	return rows, nil
}
