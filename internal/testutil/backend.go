// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/model"
)

// Request is one call recorded by a Backend.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Backend is a json-server style /events REST API over an in-memory store.
// It records every request so tests can assert on the wire traffic.
type Backend struct {
	*httptest.Server
	Store *eventstore.Memory

	mu       sync.Mutex
	requests []Request
	fail     int // non-zero forces every answer to this status
	failOn   map[string]int
}

// NewBackend starts a Backend seeded with events and closes it when the test ends.
func NewBackend(t *testing.T, seed ...model.Event) *Backend {
	t.Helper()

	b := &Backend{Store: eventstore.NewMemory(seed...)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// FailWith makes every following request answer with status. Zero restores normal operation.
func (b *Backend) FailWith(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = status
}

// FailOn makes requests with method answer with status. Zero restores normal operation.
func (b *Backend) FailOn(method string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failOn == nil {
		b.failOn = make(map[string]int)
	}
	if status == 0 {
		delete(b.failOn, method)
		return
	}
	b.failOn[method] = status
}

// Requests returns a copy of the recorded requests.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Count returns how many recorded requests used method.
func (b *Backend) Count(method string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Reset forgets the recorded requests.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	fail := b.fail
	if status, ok := b.failOn[r.Method]; ok && fail == 0 {
		fail = status
	}
	b.mu.Unlock()

	if fail != 0 {
		http.Error(w, http.StatusText(fail), fail)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, eventstore.CollectionPath)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := model.EventID(strings.TrimPrefix(rest, "/"))
	ctx := r.Context()

	switch {
	case id == "" && r.Method == http.MethodGet:
		events, err := b.Store.List(ctx)
		writeResult(w, http.StatusOK, events, err)

	case id == "" && r.Method == http.MethodPost:
		var draft model.Event
		if err := json.Unmarshal(body, &draft); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := b.Store.Create(ctx, draft)
		writeResult(w, http.StatusCreated, created, err)

	case id != "" && r.Method == http.MethodGet:
		e, err := b.Store.Get(ctx, id)
		writeResult(w, http.StatusOK, e, err)

	case id != "" && r.Method == http.MethodPut:
		var draft model.Event
		if err := json.Unmarshal(body, &draft); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updated, err := b.Store.Update(ctx, id, draft)
		writeResult(w, http.StatusOK, updated, err)

	case id != "" && r.Method == http.MethodDelete:
		err := b.Store.Delete(ctx, id)
		writeResult(w, http.StatusOK, struct{}{}, err)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeResult(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
