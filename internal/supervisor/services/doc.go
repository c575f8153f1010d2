// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package services provides the suture.Service implementations run by the
supervisor tree.

HTTPServerService turns http.Server's blocking ListenAndServe into a
context-aware Serve with graceful Shutdown.

ReloadService keeps the recommendation snapshot current:

  - optional initial build when the service starts
  - periodic rebuilds on a fixed interval
  - rebuilds when fsnotify reports a change to a data file, debounced
  - on-demand rebuilds through Reload, used by the admin API

Reloads other than the startup build are rate limited with
golang.org/x/time/rate so that at most one runs per MinReloadGap. A failed
rebuild is logged and the previous snapshot keeps serving.
*/
package services
