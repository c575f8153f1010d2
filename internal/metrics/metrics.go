// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Recommendation queries (strategy, resolution, outcome, latency)
// - Snapshot builds (duration, status, catalog and matrix sizes)
// - Dataset loading
// - API endpoint latency and throughput
// - Response cache efficiency

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieai_recommend_requests_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"strategy", "resolution", "outcome"}, // outcome: "ok", "not_found", "invalid", "not_ready", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieai_recommend_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"strategy"},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movieai_recommend_results",
			Help:    "Number of items returned per recommendation query",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieai_recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieai_recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Snapshot Metrics
	SnapshotBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieai_snapshot_builds_total",
			Help: "Total number of snapshot builds",
		},
		[]string{"status"}, // "success", "failure", "rejected"
	)

	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movieai_snapshot_build_duration_seconds",
			Help:    "Snapshot build duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieai_snapshot_version",
			Help: "Version of the currently published snapshot",
		},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieai_snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot build",
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieai_catalog_movies",
			Help: "Number of movies in the published catalog",
		},
	)

	RatedMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieai_rated_movies",
			Help: "Number of movies in the collaborative index",
		},
	)

	RatingUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieai_rating_users",
			Help: "Number of users in the rating matrix",
		},
	)

	OrphanRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieai_orphan_ratings",
			Help: "Ratings dropped from the last build because the movie is not in the catalog",
		},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieai_dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"loader", "table"},
	)

	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "movieai_dataset_rows",
			Help: "Rows read by the last dataset load",
		},
		[]string{"table"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieai_dataset_load_errors_total",
			Help: "Total number of dataset load errors",
		},
		[]string{"loader", "table"},
	)

	// Reload Metrics
	ReloadTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieai_reload_triggers_total",
			Help: "Total number of snapshot reload triggers",
		},
		[]string{"trigger"}, // "startup", "interval", "watch", "api"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordRecommendation records a recommendation query metric
func RecordRecommendation(strategy, resolution, outcome string, results int, duration time.Duration) {
	RecommendRequests.WithLabelValues(strategy, resolution, outcome).Inc()
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if outcome == "ok" {
		RecommendResults.Observe(float64(results))
	}
}

// RecordCacheLookup records a recommendation cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// SnapshotStats are the sizes published with a snapshot.
type SnapshotStats struct {
	Version       int64
	Movies        int
	RatedMovies   int
	Users         int
	OrphanRatings int
}

// RecordSnapshotBuild records a snapshot build. Gauges are only updated for
// successful builds.
func RecordSnapshotBuild(duration time.Duration, stats SnapshotStats, err error) {
	SnapshotBuildDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotBuilds.WithLabelValues("failure").Inc()
		return
	}

	SnapshotBuilds.WithLabelValues("success").Inc()
	SnapshotVersion.Set(float64(stats.Version))
	SnapshotLastSuccess.Set(float64(time.Now().Unix()))
	CatalogMovies.Set(float64(stats.Movies))
	RatedMovies.Set(float64(stats.RatedMovies))
	RatingUsers.Set(float64(stats.Users))
	OrphanRatings.Set(float64(stats.OrphanRatings))
}

// RecordSnapshotRejected records a build refused because another was running
func RecordSnapshotRejected() {
	SnapshotBuilds.WithLabelValues("rejected").Inc()
}

// RecordDatasetLoad records a dataset table load
func RecordDatasetLoad(loader, table string, rows int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(loader, table).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(loader, table).Inc()
		return
	}
	DatasetRows.WithLabelValues(table).Set(float64(rows))
}

// RecordReloadTrigger records why a reload was requested
func RecordReloadTrigger(trigger string) {
	ReloadTriggers.WithLabelValues(trigger).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetAppInfo publishes the running version
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
