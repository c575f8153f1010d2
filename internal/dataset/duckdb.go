// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/movieai/internal/models"
)

// DuckDBSource reads the tables through an in-memory DuckDB instance.
// read_csv_auto detects delimiters and quoting, and all_varchar keeps every
// cell as text so parsing rules stay with the catalog loader.
type DuckDBSource struct {
	catalogPath string
	ratingsPath string
	conn        *sql.DB
}

// NewDuckDBSource opens an in-memory DuckDB connection. Call Close when done.
func NewDuckDBSource(catalogPath, ratingsPath string) (*DuckDBSource, error) {
	// Disable auto-install so restricted environments do not hang on network access
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	conn.SetMaxOpenConns(1)

	return &DuckDBSource{
		catalogPath: catalogPath,
		ratingsPath: ratingsPath,
		conn:        conn,
	}, nil
}

// Load reads the catalog and ratings files.
func (s *DuckDBSource) Load(ctx context.Context) ([]models.Row, []models.Row, error) {
	return loadTables(ctx, LoaderDuckDB, s.catalogPath, s.ratingsPath, s.readTable)
}

// Paths returns the files read by Load.
func (s *DuckDBSource) Paths() []string { return paths(s.catalogPath, s.ratingsPath) }

// Name returns "duckdb".
func (s *DuckDBSource) Name() string { return LoaderDuckDB }

// Close closes the DuckDB connection.
func (s *DuckDBSource) Close() error {
	return s.conn.Close()
}

// readTable runs read_csv_auto over path. Table functions do not accept
// bind parameters, so the path is embedded as an escaped string literal.
func (s *DuckDBSource) readTable(ctx context.Context, path string) ([]models.Row, error) {
	query := fmt.Sprintf("SELECT * FROM read_csv_auto(%s, header = true, all_varchar = true)", quoteLiteral(path))

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	out := []models.Row{}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make(models.Row, len(columns))
		for i, col := range columns {
			row[col] = values[i].String // NULL reads as ""
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
