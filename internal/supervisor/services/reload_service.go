// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/movieai/internal/logging"
	"github.com/tomtom215/movieai/internal/metrics"
	"github.com/tomtom215/movieai/internal/models"
	"github.com/tomtom215/movieai/internal/recommend"
)

// Reload triggers, used in logs and the movieai_reload_triggers_total metric.
const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerWatch    = "watch"
)

// Rebuilder builds and publishes a snapshot from a data source.
// Satisfied by *recommend.Engine.
type Rebuilder interface {
	Rebuild(ctx context.Context, src recommend.DataSource) (*recommend.Snapshot, error)
}

// WatchedSource is a data source whose files can be watched for changes.
// Satisfied by dataset.Source.
type WatchedSource interface {
	recommend.DataSource

	// Paths returns the files the source reads. Blank entries are ignored.
	Paths() []string
}

// ReloadServiceConfig holds configuration for the reload service.
type ReloadServiceConfig struct {
	// LoadOnStartup builds the first snapshot when the service starts.
	LoadOnStartup bool

	// Interval rebuilds periodically. Zero disables periodic rebuilds.
	Interval time.Duration

	// Watch rebuilds when a data file changes.
	Watch bool

	// WatchDebounce collapses bursts of file events into one rebuild.
	// Default: 2s
	WatchDebounce time.Duration

	// MinReloadGap is the minimum time between two reloads. The startup
	// build is exempt. Zero disables throttling.
	MinReloadGap time.Duration
}

// ReloadService keeps the engine snapshot in sync with the data files.
//
// It builds the initial snapshot, rebuilds on a fixed interval and rebuilds
// when fsnotify reports a change to a data file. Failed builds are logged
// and the previous snapshot keeps serving.
type ReloadService struct {
	engine  Rebuilder
	source  WatchedSource
	config  ReloadServiceConfig
	limiter *rate.Limiter
	logger  zerolog.Logger
	name    string
}

// NewReloadService creates a new reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(engine Rebuilder, source WatchedSource, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 2 * time.Second
	}

	limit := rate.Inf
	if cfg.MinReloadGap > 0 {
		limit = rate.Every(cfg.MinReloadGap)
	}

	return &ReloadService{
		engine:  engine,
		source:  source,
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("service", "reload").Logger(),
		name:    "reload-service",
	}
}

// Reload rebuilds the snapshot now. It fails with models.ErrReloadThrottled
// when called inside MinReloadGap of the previous reload, and with
// models.ErrBuildInProgress when another build is running.
func (s *ReloadService) Reload(ctx context.Context, trigger string) (*recommend.Snapshot, error) {
	metrics.RecordReloadTrigger(trigger)

	if trigger != TriggerStartup && !s.limiter.Allow() {
		s.logger.Debug().Str("trigger", trigger).Msg("reload throttled")
		return nil, models.ErrReloadThrottled
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := s.logger.With().
		Str("trigger", trigger).
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Logger()

	start := time.Now()
	logger.Info().Msg("rebuilding snapshot")

	snap, err := s.engine.Rebuild(ctx, s.source)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("rebuild failed, previous snapshot kept")
		return nil, err
	}

	logger.Info().
		Int64("version", snap.Version).
		Dur("duration", time.Since(start)).
		Msg("rebuild complete")
	return snap, nil
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("load_on_startup", s.config.LoadOnStartup).
		Dur("interval", s.config.Interval).
		Bool("watch", s.config.Watch).
		Msg("reload service starting")

	if s.config.LoadOnStartup {
		if _, err := s.Reload(ctx, TriggerStartup); err != nil {
			s.logger.Warn().Err(err).Msg("initial build failed (will retry on the next trigger)")
		}
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var (
		events    <-chan fsnotify.Event
		watchErrs <-chan error
		watched   map[string]bool
	)
	if s.config.Watch {
		watcher, files, err := s.newWatcher()
		if err != nil {
			s.logger.Error().Err(err).Msg("file watching disabled")
		} else {
			defer func() {
				if cerr := watcher.Close(); cerr != nil {
					s.logger.Warn().Err(cerr).Msg("closing file watcher")
				}
			}()
			events, watchErrs, watched = watcher.Events, watcher.Errors, files
		}
	}

	var (
		debounce  *time.Timer
		debounceC <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	schedule := func(d time.Duration) {
		if debounce == nil {
			debounce = time.NewTimer(d)
		} else {
			debounce.Reset(d)
		}
		debounceC = debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()

		case <-tick:
			_, _ = s.Reload(ctx, TriggerInterval) // logged by Reload

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !watched[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("data file changed")
			schedule(s.config.WatchDebounce)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			s.logger.Warn().Err(err).Msg("file watcher error")

		case <-debounceC:
			debounceC = nil
			if _, err := s.Reload(ctx, TriggerWatch); errors.Is(err, models.ErrReloadThrottled) {
				// Retry once the gap has passed so the change is not lost
				schedule(s.untilAllowed())
			}
		}
	}
}

// untilAllowed returns how long until the limiter admits another reload.
func (s *ReloadService) untilAllowed() time.Duration {
	r := s.limiter.Reserve()
	d := r.Delay()
	r.Cancel()
	return d
}

// newWatcher watches the directories holding the data files. Directories
// are watched rather than files so that atomic replace-by-rename is seen.
func (s *ReloadService) newWatcher() (*fsnotify.Watcher, map[string]bool, error) {
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range s.source.Paths() {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if len(files) == 0 {
		return nil, nil, errors.New("source has no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		s.logger.Info().Str("dir", dir).Msg("watching data directory")
	}
	return watcher, files, nil
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
