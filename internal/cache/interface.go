// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache holds the byte-level caches that sit in front of the events
// backend. Values are opaque to this package; TypedCache adds JSON encoding.
package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// Cacher is the storage contract used by TypedCache.
type Cacher interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Stats reports counters since the cache was opened.
	Stats() Stats

	Close() error
}

// Stats is a point-in-time view of cache activity, exposed on /health.
type Stats struct {
	Backend BackendType `json:"backend"`
	Hits    int64       `json:"hits"`
	Misses  int64       `json:"misses"`
	Sets    int64       `json:"sets"`
	Items   int64       `json:"items,omitempty"` // memory backend only
	HitRate float64     `json:"hit_rate"`        // percent
}

// Error is a sentinel error type for cache conditions.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrCacheMiss   Error = "cache: miss"
	ErrCacheClosed Error = "cache: closed"
)

// counters is the hit/miss bookkeeping shared by both backends.
type counters struct {
	hits, misses, sets atomic.Int64
}

func (c *counters) lookup(found bool) {
	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
}

func (c *counters) snapshot(backend BackendType, items int64) Stats {
	s := Stats{
		Backend: backend,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Sets:    c.sets.Load(),
		Items:   items,
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	}
	return s
}
