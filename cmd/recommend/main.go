// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

// Package main provides the recommend CLI for one-shot queries against a
// catalog and rating file without running the server.
//
//	recommend --catalog movies.csv --ratings ratings.csv --title "Inception" --k 5
//	recommend --catalog movies.csv --strategy content --genre Drama --json
//	recommend --catalog movies.csv genres
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Version: version,
		Usage:   "Recommend movies from a catalog and optional ratings",
		Flags:   commonFlags(),
		Action:  runRecommend,
		Commands: []*cli.Command{
			genresCommand(),
		},
	}
}

// commonFlags are persistent, so subcommands accept them too.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "catalog",
			Aliases: []string{"c"},
			Usage:   "movie catalog file",
			Sources: cli.EnvVars("DATA_CATALOG_PATH"),
		},
		&cli.StringFlag{
			Name:    "ratings",
			Aliases: []string{"r"},
			Usage:   "rating file (optional)",
			Sources: cli.EnvVars("DATA_RATINGS_PATH"),
		},
		&cli.StringFlag{
			Name:    "loader",
			Usage:   "file loader: csv or duckdb",
			Value:   "csv",
			Sources: cli.EnvVars("DATA_LOADER"),
		},
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "content, collaborative or hybrid",
			Value:   "hybrid",
		},
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "query movie title (case-insensitive exact match)",
		},
		&cli.IntFlag{
			Name:  "movie-id",
			Usage: "query movie id (takes precedence over --title)",
		},
		&cli.StringFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "only recommend movies with this genre",
		},
		&cli.IntFlag{
			Name:  "k",
			Usage: "number of recommendations",
			Value: 5,
		},
		&cli.FloatFlag{
			Name:  "weight-content",
			Usage: "hybrid content weight (default from engine config)",
		},
		&cli.FloatFlag{
			Name:  "weight-collab",
			Usage: "hybrid collaborative weight (default from engine config)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "output results as JSON",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level written to stderr",
			Value:   "warn",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
	}
}
