// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view holds the page state machines driven by the HTTP handlers.
package view

import (
	"context"
	"log/slog"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/filter"
	"github.com/olegiv/eventboard/internal/model"
)

// ListView is the state of the events list page and its create modal.
type ListView struct {
	Events          []model.Event
	ShowCreateModal bool
	Draft           model.Event
	Err             error

	store  eventstore.Store
	logger *slog.Logger
}

// NewListView creates an empty list view backed by store.
func NewListView(store eventstore.Store, logger *slog.Logger) *ListView {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListView{
		Events: []model.Event{},
		Draft:  blankDraft(),
		store:  store,
		logger: logger,
	}
}

// Load fetches the collection. On failure Events stays empty and Err is set.
func (v *ListView) Load(ctx context.Context) error {
	events, err := v.store.List(ctx)
	if err != nil {
		v.logger.Error("failed to list events", "error", err)
		v.Events = []model.Event{}
		v.Err = err
		return err
	}
	v.Events = events
	v.Err = nil
	return nil
}

// Visible returns the events matching the search term and category, in order.
func (v *ListView) Visible(searchTerm string, category model.Category) []model.Event {
	return filter.Events(v.Events, searchTerm, category)
}

// OpenCreate shows the create modal.
func (v *ListView) OpenCreate() {
	v.ShowCreateModal = true
}

// CloseCreate hides the create modal and discards the draft.
func (v *ListView) CloseCreate() {
	v.ShowCreateModal = false
	v.Draft = blankDraft()
}

// SetDraft replaces the in-progress creation form. Any id is dropped.
func (v *ListView) SetDraft(draft model.Event) {
	draft = draft.Clone()
	draft.ID = ""
	v.Draft = draft
}

// Submit creates the draft. On success the stored record is appended and the
// modal closes. On failure the modal stays open with the draft intact.
func (v *ListView) Submit(ctx context.Context) (model.Event, error) {
	created, err := v.store.Create(ctx, v.Draft)
	if err != nil {
		v.logger.Error("failed to create event", "title", v.Draft.Title, "error", err)
		v.Err = err
		return model.Event{}, err
	}

	v.Events = append(v.Events, created)
	v.Err = nil
	v.CloseCreate()
	return created, nil
}

func blankDraft() model.Event {
	return model.Event{Categories: model.Categories{}}
}
