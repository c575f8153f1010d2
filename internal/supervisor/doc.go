// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package supervisor provides process supervision for MovieAI using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("movieai")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff. Failures are counted per
layer, so a reload service that keeps failing does not restart the HTTP
server, and queries keep using the last published snapshot.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(reloadSvc)
	tree.AddAPIService(httpSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (service failures, restarts, backoff) are reported through
sutureslog, which the logging package bridges into zerolog.
*/
package supervisor
