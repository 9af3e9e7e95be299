// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryCacheOptions configures a MemoryCache.
type MemoryCacheOptions struct {
	DefaultTTL time.Duration

	// MaxSize caps the number of entries; 0 means unbounded. When full, the
	// entry closest to expiry is evicted.
	MaxSize int

	// CleanupInterval controls the expiry sweep; 0 disables it and expired
	// entries are dropped lazily on Get.
	CleanupInterval time.Duration
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// MemoryCache is a process-local Cacher used when no Redis URL is configured.
type MemoryCache struct {
	opts MemoryCacheOptions

	mu      sync.RWMutex
	entries map[string]memoryEntry
	closed  bool

	stats counters
	stop  chan struct{}
	done  chan struct{}
}

// NewMemoryCache creates a MemoryCache and starts its sweep goroutine when
// CleanupInterval is set.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		opts:    opts,
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.sweep(opts.CleanupInterval)
	} else {
		close(c.done)
	}
	return c
}

// Get returns a copy of the stored value.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrCacheClosed
	}
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && e.expired(time.Now()) {
		_ = c.Delete(context.Background(), key)
		ok = false
	}
	c.stats.lookup(ok)
	if !ok {
		return nil, ErrCacheMiss
	}
	return slices.Clone(e.value), nil
}

// Set stores a copy of value.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.opts.DefaultTTL
	}
	e := memoryEntry{value: slices.Clone(value)}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	if _, exists := c.entries[key]; !exists && c.opts.MaxSize > 0 && len(c.entries) >= c.opts.MaxSize {
		c.evictLocked()
	}
	c.entries[key] = e
	c.stats.sets.Add(1)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	n := int64(len(c.entries))
	c.mu.RUnlock()
	return c.stats.snapshot(BackendMemory, n)
}

// Close stops the sweep goroutine and drops all entries. Later calls are no-ops.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.entries = nil
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// evictLocked drops one entry: an expired one if present, otherwise the one
// that expires first. Entries without expiry go last.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	victim, first := "", true
	var soonest time.Time
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			return
		}
		if first || (!e.expires.IsZero() && (soonest.IsZero() || e.expires.Before(soonest))) {
			victim, soonest, first = k, e.expires, false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}

func (c *MemoryCache) sweep(every time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
