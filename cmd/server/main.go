// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/movieai/internal/api"
	"github.com/tomtom215/movieai/internal/config"
	"github.com/tomtom215/movieai/internal/dataset"
	"github.com/tomtom215/movieai/internal/logging"
	"github.com/tomtom215/movieai/internal/metrics"
	"github.com/tomtom215/movieai/internal/recommend"
	"github.com/tomtom215/movieai/internal/supervisor"
	"github.com/tomtom215/movieai/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// application holds the wired components.
type application struct {
	source dataset.Source
	engine *recommend.Engine
	reload *services.ReloadService
	server *http.Server
	tree   *supervisor.SupervisorTree
}

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("loader", cfg.Data.Loader).
		Str("catalog", cfg.Data.CatalogPath).
		Str("ratings", cfg.Data.RatingsPath).
		Str("environment", cfg.Server.Environment).
		Msg("Starting MovieAI with supervisor tree")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().
			Strs("cors_origins", cfg.Security.CORSOrigins).
			Msg("Admin reload is enabled with wildcard CORS; restrict CORS_ORIGINS in production")
	}

	app, err := newApplication(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		if err := app.source.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing data source")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.run(ctx); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
		stop()
		os.Exit(1) //nolint:gocritic // deferred Close is best effort
	}
	logging.Info().Msg("Application stopped gracefully")
}

// newApplication wires the data source, engine, reload service, HTTP
// server and supervisor tree. Nothing is started.
func newApplication(cfg *config.Config) (*application, error) {
	source, err := dataset.New(cfg.DatasetOptions())
	if err != nil {
		return nil, fmt.Errorf("create data source: %w", err)
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	reload := services.NewReloadService(engine, source, services.ReloadServiceConfig{
		LoadOnStartup: cfg.Data.LoadOnStartup,
		Interval:      cfg.Data.ReloadInterval,
		Watch:         cfg.Data.Watch,
		WatchDebounce: cfg.Data.WatchDebounce,
		MinReloadGap:  cfg.Data.MinReloadGap,
	}, logging.Logger())

	// The admin route is only registered when a reloader is passed
	var reloader api.Reloader
	if cfg.Security.AdminReloadEnabled {
		reloader = reload
	}
	handler := api.NewHandler(engine, reloader, version)
	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(reload)
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger()))

	logging.Info().
		Str("addr", server.Addr).
		Bool("admin_reload", reloader != nil).
		Bool("watch", cfg.Data.Watch).
		Dur("reload_interval", cfg.Data.ReloadInterval).
		Msg("Services added to supervisor tree")

	return &application{
		source: source,
		engine: engine,
		reload: reload,
		server: server,
		tree:   tree,
	}, nil
}

// run serves the tree until ctx is canceled and reports services that
// failed to stop in time.
func (a *application) run(ctx context.Context) error {
	logging.Info().Msg("Starting supervisor tree...")
	errCh := a.tree.ServeBackground(ctx)

	// The channel receives exactly one value and is never closed
	var runErr error
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		runErr = err
	}

	unstopped, _ := a.tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	return runErr
}
