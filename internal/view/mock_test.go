// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/model"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockStore) Get(ctx context.Context, id model.EventID) (model.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, draft model.Event) (model.Event, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, id model.EventID, draft model.Event) (model.Event, error) {
	args := m.Called(ctx, id, draft)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id model.EventID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ eventstore.Store = (*mockStore)(nil)
