// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package main is the entry point for the MovieAI recommendation server.

The server loads a movie catalog and optional ratings, builds an immutable
recommendation snapshot and serves content, collaborative and hybrid
recommendations over a JSON HTTP API.

# Application Architecture

Processes run under a Suture v4 supervision tree:

	RootSupervisor ("movieai")
	├── DataSupervisor ("data-layer")
	│   └── Reload Service (startup build, interval, file watch)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON or console output
 3. Dataset: CSV or DuckDB source for the catalog and rating tables
 4. Engine: recommend.Engine with its response cache
 5. Reload Service: builds and republishes snapshots
 6. HTTP Server: chi router with CORS, rate limiting and Prometheus metrics
 7. Supervisor Tree: runs both layers until SIGINT or SIGTERM

# Configuration

Common environment variables:

	DATA_LOADER=csv                 # csv or duckdb
	DATA_CATALOG_PATH=data/movies.csv
	DATA_RATINGS_PATH=data/ratings.csv
	DATA_WATCH=true                 # rebuild when the files change
	HTTP_PORT=8080
	LOG_LEVEL=info
	ADMIN_RELOAD_ENABLED=true

Every variable also accepts a MOVIEAI_ prefix.

# Signal Handling

On SIGINT or SIGTERM the tree cancels its services. The HTTP server stops
accepting connections and drains in-flight requests within
HTTP_SHUTDOWN_TIMEOUT; the reload service stops its watcher.
*/
package main
