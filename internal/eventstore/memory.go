// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package eventstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/olegiv/eventboard/internal/model"
)

// Memory is a thread-safe in-memory Store. Records are copied in and out,
// so callers never share state with the store.
type Memory struct {
	mu     sync.RWMutex
	order  []model.EventID
	events map[model.EventID]model.Event
	newID  func() model.EventID
}

// NewMemory creates a Memory store holding a copy of seed. Seed events without an id get one.
func NewMemory(seed ...model.Event) *Memory {
	m := &Memory{
		events: make(map[model.EventID]model.Event, len(seed)),
		newID: func() model.EventID {
			return model.EventID(uuid.NewString())
		},
	}
	for _, e := range seed {
		if e.ID == "" {
			e.ID = m.newID()
		}
		m.put(e)
	}
	return m
}

// List returns all events in insertion order.
func (m *Memory) List(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Event, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.events[id].Clone())
	}
	return out, nil
}

// Get returns the event with id.
func (m *Memory) Get(ctx context.Context, id model.EventID) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return model.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e.Clone(), nil
}

// Create stores draft under a fresh id.
func (m *Memory) Create(ctx context.Context, draft model.Event) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	draft = normalize(draft)
	draft.ID = m.newID()
	m.put(draft)
	return draft.Clone(), nil
}

// Update replaces the record with id.
func (m *Memory) Update(ctx context.Context, id model.EventID, draft model.Event) (model.Event, error) {
	if err := ctx.Err(); err != nil {
		return model.Event{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return model.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	draft = normalize(draft)
	draft.ID = id
	m.events[id] = draft
	return draft.Clone(), nil
}

// Delete removes the record with id.
func (m *Memory) Delete(ctx context.Context, id model.EventID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	delete(m.events, id)
	for i, have := range m.order {
		if have == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Reset replaces the whole collection with a copy of events.
func (m *Memory) Reset(events ...model.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = nil
	m.events = make(map[model.EventID]model.Event, len(events))
	for _, e := range events {
		if e.ID == "" {
			e.ID = m.newID()
		}
		m.put(e)
	}
}

// Len returns the number of stored events.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// put must be called with the write lock held (or during construction).
func (m *Memory) put(e model.Event) {
	e = normalize(e)
	if _, exists := m.events[e.ID]; !exists {
		m.order = append(m.order, e.ID)
	}
	m.events[e.ID] = e
}

func normalize(e model.Event) model.Event {
	e = e.Clone()
	if e.Categories == nil {
		e.Categories = model.Categories{}
	}
	return e
}

var _ Store = (*Memory)(nil)
