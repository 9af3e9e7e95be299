// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package eventstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/eventboard/internal/cache"
	"github.com/olegiv/eventboard/internal/model"
)

// Cache keys, relative to the cache prefix.
const (
	listKey       = "events:list"
	itemKeyPrefix = "events:item:"
)

// Cached is a read-through cache in front of another Store.
// Reads are served from the cache when present; every successful write
// invalidates the list and the affected record.
type Cached struct {
	next   Store
	list   *cache.TypedCache[[]model.Event]
	items  *cache.TypedCache[model.Event]
	logger *slog.Logger
}

// NewCached wraps next with a cache whose entries live for ttl.
func NewCached(next Store, c cache.Cacher, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{
		next:   next,
		list:   cache.NewTypedCache[[]model.Event](c, ttl),
		items:  cache.NewTypedCache[model.Event](c, ttl),
		logger: logger,
	}
}

// List returns the cached collection or fetches it.
func (s *Cached) List(ctx context.Context) ([]model.Event, error) {
	return s.list.GetOrSet(ctx, listKey, func() ([]model.Event, error) {
		return s.next.List(ctx)
	})
}

// Get returns the cached record or fetches it. Misses are not cached.
func (s *Cached) Get(ctx context.Context, id model.EventID) (model.Event, error) {
	return s.items.GetOrSet(ctx, itemKey(id), func() (model.Event, error) {
		return s.next.Get(ctx, id)
	})
}

// Create forwards to the wrapped store and drops the cached list.
func (s *Cached) Create(ctx context.Context, draft model.Event) (model.Event, error) {
	created, err := s.next.Create(ctx, draft)
	if err != nil {
		return created, err
	}
	s.invalidate(ctx, created.ID)
	return created, nil
}

// Update forwards to the wrapped store and drops the cached entries for id.
func (s *Cached) Update(ctx context.Context, id model.EventID, draft model.Event) (model.Event, error) {
	updated, err := s.next.Update(ctx, id, draft)
	if err != nil {
		return updated, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Delete forwards to the wrapped store and drops the cached entries for id.
func (s *Cached) Delete(ctx context.Context, id model.EventID) error {
	if err := s.next.Delete(ctx, id); err != nil {
		// a 404 means the record is gone either way
		if IsNotFound(err) {
			s.invalidate(ctx, id)
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Refresh fetches the collection from the wrapped store and replaces the cached list.
// It returns the number of events loaded.
func (s *Cached) Refresh(ctx context.Context) (int, error) {
	events, err := s.next.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("refreshing event list: %w", err)
	}
	if err := s.list.Set(ctx, listKey, events); err != nil {
		return 0, fmt.Errorf("caching event list: %w", err)
	}
	return len(events), nil
}

// Ping forwards to the wrapped store when it supports health checks.
func (s *Cached) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Cached) invalidate(ctx context.Context, id model.EventID) {
	if err := s.list.Delete(ctx, listKey); err != nil {
		s.logger.Warn("failed to invalidate event list cache", "error", err)
	}
	if id == "" {
		return
	}
	if err := s.items.Delete(ctx, itemKey(id)); err != nil {
		s.logger.Warn("failed to invalidate event cache", "event_id", id, "error", err)
	}
}

func itemKey(id model.EventID) string {
	return itemKeyPrefix + id.String()
}

var (
	_ Store  = (*Cached)(nil)
	_ Pinger = (*Cached)(nil)
)
