// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package eventstore provides access to the events collection held by the backend.
package eventstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/olegiv/eventboard/internal/model"
)

// Store is the data-access contract the views depend on.
// Every call is a single round-trip with no retry.
type Store interface {
	List(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id model.EventID) (model.Event, error)
	Create(ctx context.Context, draft model.Event) (model.Event, error)
	// Update replaces the whole record.
	Update(ctx context.Context, id model.EventID, draft model.Event) (model.Event, error)
	Delete(ctx context.Context, id model.EventID) error
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	// ErrNotFound is returned when the backend has no event with the given id.
	ErrNotFound = errors.New("event not found")

	// ErrMalformedResponse is returned when the backend body has an unexpected shape.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err means the event does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
