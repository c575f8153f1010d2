// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
are exposed by the API server at /metrics in the Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - movieai_recommend_requests_total: Queries served (counter)
    Labels: strategy, resolution (resolved, fallback), outcome
  - movieai_recommend_duration_seconds: Query latency (histogram)
    Labels: strategy
  - movieai_recommend_results: Items returned per query (histogram)
  - movieai_recommend_cache_hits_total / _misses_total (counters)

Snapshot Metrics:
  - movieai_snapshot_builds_total: Builds by status (success, failure, rejected)
  - movieai_snapshot_build_duration_seconds: Build latency (histogram)
  - movieai_snapshot_version: Version of the published snapshot (gauge)
  - movieai_catalog_movies, movieai_rated_movies, movieai_rating_users (gauges)
  - movieai_orphan_ratings: Ratings dropped for unknown movies (gauge)

Dataset Metrics:
  - movieai_dataset_load_duration_seconds: Labels loader, table
  - movieai_dataset_rows: Rows read by the last load, Labels table
  - movieai_dataset_load_errors_total: Labels loader, table

API Metrics:
  - api_requests_total: Labels method, endpoint, status_code
  - api_request_duration_seconds: Labels method, endpoint
  - api_active_requests (gauge)
  - api_rate_limit_hits_total: Labels endpoint

# Usage

Components record through the helper functions rather than touching the
collectors directly:

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation("hybrid", "resolved", "ok", len(resp.Items), time.Since(start))

# Cardinality

Labels are bounded: strategies and resolutions are fixed enums, endpoints
are chi route patterns rather than raw paths, and movie or user IDs are
never used as label values.
*/
package metrics
