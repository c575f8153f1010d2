// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tomtom215/movieai/internal/dataset"
	"github.com/tomtom215/movieai/internal/logging"
	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend"
)

// ErrNoCatalog is returned when neither --catalog nor DATA_CATALOG_PATH names a catalog file.
var ErrNoCatalog = errors.New("no catalog specified (use --catalog or DATA_CATALOG_PATH)")

// loadEngine builds a snapshot from the files named by the flags.
func loadEngine(ctx context.Context, cmd *cli.Command) (*recommend.Engine, *recommend.Snapshot, error) {
	catalogPath := strings.TrimSpace(cmd.String("catalog"))
	if catalogPath == "" {
		return nil, nil, ErrNoCatalog
	}

	logging.Init(logging.Config{
		Level:  cmd.String("log-level"),
		Format: "console",
		Output: cmd.Root().ErrWriter,
	})

	src, err := dataset.New(dataset.Options{
		Loader:      cmd.String("loader"),
		CatalogPath: catalogPath,
		RatingsPath: strings.TrimSpace(cmd.String("ratings")),
	})
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logging.Warn().Err(err).Msg("close data source")
		}
	}()

	cfg := recommend.DefaultConfig()
	cfg.Cache.Enabled = false
	engine, err := recommend.NewEngine(cfg, logging.WithComponent("recommend"))
	if err != nil {
		return nil, nil, err
	}

	snap, err := engine.Rebuild(ctx, src)
	if err != nil {
		return nil, nil, fmt.Errorf("build snapshot: %w", err)
	}
	return engine, snap, nil
}

// requestFromFlags maps flags onto a recommendation request. Unset
// optional flags leave the engine defaults in place.
func requestFromFlags(cmd *cli.Command) (recommend.Request, error) {
	strategy, err := recommend.ParseStrategy(cmd.String("strategy"))
	if err != nil {
		return recommend.Request{}, err
	}

	req := recommend.Request{
		Title:     cmd.String("title"),
		Strategy:  strategy,
		Genre:     cmd.String("genre"),
		K:         cmd.Int("k"),
		RequestID: logging.GenerateRequestID(),
	}
	if cmd.IsSet("movie-id") {
		id := cmd.Int("movie-id")
		req.MovieID = &id
	}
	if cmd.IsSet("weight-content") {
		w := cmd.Float("weight-content")
		req.WeightContent = &w
	}
	if cmd.IsSet("weight-collab") {
		w := cmd.Float("weight-collab")
		req.WeightCollab = &w
	}
	return req, nil
}

func runRecommend(ctx context.Context, cmd *cli.Command) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	engine, _, err := loadEngine(ctx, cmd)
	if err != nil {
		return err
	}

	resp, err := engine.Recommend(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	for _, w := range resp.Metadata.Warnings {
		fmt.Fprintf(cmd.Root().ErrWriter, "warning: %s\n", w)
	}
	if cmd.Bool("json") {
		return writeJSON(out, resp)
	}
	return writeRecommendations(out, resp)
}

func genresCommand() *cli.Command {
	return &cli.Command{
		Name:   "genres",
		Usage:  "List the genres in the catalog",
		Action: runGenres,
	}
}

func runGenres(ctx context.Context, cmd *cli.Command) error {
	_, snap, err := loadEngine(ctx, cmd)
	if err != nil {
		return err
	}

	genres := snap.Catalog.Genres()
	out := cmd.Root().Writer
	if cmd.Bool("json") {
		return writeJSON(out, models.GenreList{Genres: genres, Count: len(genres)})
	}
	for _, g := range genres {
		fmt.Fprintln(out, g)
	}
	return nil
}
