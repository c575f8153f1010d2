// MovieAI - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movieai

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiration.

The recommendation engine caches responses keyed by snapshot version and
normalized request, and clears the cache when a new snapshot is published.

# Behavior

  - Get, Add and Remove are O(1)
  - The least recently used entry is evicted when capacity is reached
  - Expired entries are dropped lazily on Get, or in bulk by CleanupExpired
  - Stats reports hits, misses and size

# Usage Example

	c := cache.NewLRU[string, *recommend.Response](1000, 5*time.Minute)
	c.Add(key, resp)
	if resp, ok := c.Get(key); ok {
	    // serve from cache
	}

# Thread Safety

All methods are safe for concurrent use. A single mutex guards the map and
the recency list, since Get mutates recency order.
*/
package cache
