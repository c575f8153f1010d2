// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package config provides centralized configuration management for MovieAI.

Configuration is layered with koanf v2: struct defaults, then an optional
YAML file, then environment variables. The result is validated once and is
read-only afterwards.

# Configuration File

The file is located through CONFIG_PATH, or the first of config.yaml,
config.yml and /etc/movieai/config.yaml that exists:

	server:
	  port: 8080
	data:
	  loader: duckdb
	  catalog_path: /data/imdb_top_1000.csv
	  ratings_path: /data/ratings.csv
	  watch: true
	recommend:
	  default_strategy: hybrid
	  hybrid:
	    weight_content: 0.7
	    weight_collab: 0.3
	  limits:
	    max_k: 25

# Environment Variables

Every variable may also carry a MOVIEAI_ prefix.

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown bound (default: 10s)
  - ENVIRONMENT: development, staging, production (default: development)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Data:
  - DATA_LOADER: csv or duckdb (default: csv)
  - DATA_CATALOG_PATH: movie table (default: data/movies.csv)
  - DATA_RATINGS_PATH: rating table (optional)
  - DATA_LOAD_ON_STARTUP, DATA_WATCH, DATA_WATCH_DEBOUNCE
  - DATA_RELOAD_INTERVAL, DATA_MIN_RELOAD_GAP

Recommendation engine:
  - RECOMMEND_DEFAULT_STRATEGY, RECOMMEND_MAX_FEATURES, RECOMMEND_STOP_WORDS
  - RECOMMEND_WEIGHT_CONTENT, RECOMMEND_WEIGHT_COLLAB, RECOMMEND_CANDIDATE_MULTIPLIER
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K, RECOMMEND_QUERY_TIMEOUT, RECOMMEND_BUILD_TIMEOUT
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - ADMIN_RELOAD_ENABLED: expose POST /api/v1/admin/reload (default: true)
*/
package config
