// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/filter"
	"github.com/olegiv/eventboard/internal/model"
)

func TestEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	events := Events(now)
	require.NotEmpty(t, events)

	ids := map[model.EventID]bool{}
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, ids[e.ID], "duplicate id %s", e.ID)
		ids[e.ID] = true

		assert.NotEmpty(t, e.Title)
		start, ok := e.Start()
		require.True(t, ok, "start of %q must parse", e.Title)
		end, ok := e.End()
		require.True(t, ok, "end of %q must parse", e.Title)
		assert.True(t, end.After(start), "%q ends before it starts", e.Title)
		assert.True(t, start.After(now), "%q should be upcoming", e.Title)

		for _, c := range e.Categories {
			assert.True(t, c.IsKnown(), "unknown category %q", c)
		}
	}
}

func TestEvents_CoverEveryCategory(t *testing.T) {
	events := Events(time.Now())
	for _, c := range model.AllCategories {
		assert.NotEmpty(t, filter.Events(events, "", c), "no sample event for %s", c)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := eventstore.NewMemory(model.Event{Title: "user edit"})

	require.NoError(t, Reset(ctx, store, time.Now()))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(Events(time.Now())))
	assert.Empty(t, filter.Events(list, "user edit", ""))
}
