// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package eventstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/eventboard/internal/model"
)

func TestMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(model.Event{Title: "seeded"})
	require.Equal(t, 1, m.Len())

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.NotNil(t, list[0].Categories)

	created, err := m.Create(ctx, model.Event{ID: "client-id", Title: "new"})
	require.NoError(t, err)
	assert.NotEqual(t, model.EventID("client-id"), created.ID)

	got, err := m.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)

	updated, err := m.Update(ctx, created.ID, model.Event{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	require.NoError(t, m.Delete(ctx, created.ID))
	_, err = m.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(model.Event{ID: "b"}, model.Event{ID: "a"}, model.Event{ID: "c"})
	require.NoError(t, m.Delete(ctx, "a"))
	_, err := m.Create(ctx, model.Event{Title: "d"})
	require.NoError(t, err)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, model.EventID("b"), list[0].ID)
	assert.Equal(t, model.EventID("c"), list[1].ID)
}

func TestMemory_MissingIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Update(ctx, "nope", model.Event{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "nope"), ErrNotFound)
}

func TestMemory_NoSharedState(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(model.Event{ID: "1", Categories: model.NewCategories("Sport")})

	got, err := m.Get(ctx, "1")
	require.NoError(t, err)
	got.Categories[0] = model.CategoryCulture

	again, err := m.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.CategorySport, again.Categories[0])
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemory().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_Reset(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(model.Event{Title: "old"}, model.Event{Title: "older"})

	m.Reset(model.Event{ID: "1", Title: "fresh"})

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.EventID("1"), list[0].ID)
	assert.Equal(t, "fresh", list[0].Title)

	// the store keeps working after a reset
	_, err = m.Create(ctx, model.Event{Title: "after"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}
