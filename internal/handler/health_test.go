// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/eventboard/internal/cache"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := chi.NewRouter()
	h.Routes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealth(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		backend    pingerFunc
		cache      pingerFunc
		wantCode   int
		wantStatus string
	}{
		{"all healthy", ok, ok, http.StatusOK, "healthy"},
		{"no cache", ok, nil, http.StatusOK, "healthy"},
		{"backend down", down, ok, http.StatusServiceUnavailable, "degraded"},
		{"cache down", ok, down, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h *HealthHandler
			if tt.cache == nil {
				h = NewHealthHandler(tt.backend, nil, "1.2.3")
			} else {
				h = NewHealthHandler(tt.backend, tt.cache, "1.2.3")
			}

			w, body := serveHealth(t, h, RouteHealth)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, "1.2.3", body["version"])
			assert.NotContains(t, body, "system")

			checks, _ := body["checks"].(map[string]any)
			assert.Contains(t, checks, "backend")
			if tt.cache == nil {
				assert.NotContains(t, checks, "cache")
			}
		})
	}
}

func TestHealth_Verbose(t *testing.T) {
	h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), nil, "dev")

	_, body := serveHealth(t, h, RouteHealth+"?verbose=true")
	system, ok := body["system"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, system["go_version"])
	assert.NotContains(t, body, "cache")
}

func TestHealth_VerboseCacheStats(t *testing.T) {
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "events:list", []byte("[]"), 0))
	_, _ = mc.Get(ctx, "events:list")
	_, _ = mc.Get(ctx, "events:item:9")

	h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), nil, "dev").WithCacheStats(mc)

	_, plain := serveHealth(t, h, RouteHealth)
	assert.NotContains(t, plain, "cache")

	_, body := serveHealth(t, h, RouteHealth+"?verbose=true")
	stats, ok := body["cache"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "memory", stats["backend"])
	assert.EqualValues(t, 1, stats["hits"])
	assert.EqualValues(t, 1, stats["misses"])
	assert.EqualValues(t, 1, stats["sets"])
	assert.EqualValues(t, 50, stats["hit_rate"])
}

func TestHealth_UnhealthyMessage(t *testing.T) {
	h := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("boom") }), nil, "dev")

	_, body := serveHealth(t, h, RouteHealth)
	checks := body["checks"].(map[string]any)
	backend := checks["backend"].(map[string]any)
	assert.Equal(t, "unhealthy", backend["status"])
	assert.Equal(t, "boom", backend["message"])
}

func TestLivenessAndReadiness(t *testing.T) {
	healthy := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), nil, "dev")
	broken := NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("down") }), nil, "dev")

	w, body := serveHealth(t, broken, RouteHealthLive)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", body["status"])

	w, body = serveHealth(t, healthy, RouteHealthReady)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])

	w, body = serveHealth(t, broken, RouteHealthReady)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, map[string]any{"status": "not_ready"}, body)
}

func TestHealth_AgainstBackend(t *testing.T) {
	app := newTestApp(t, seedEvents()...)

	resp, _ := app.get(t, RouteHealthReady)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app.backend.FailWith(http.StatusInternalServerError)
	resp, _ = app.get(t, RouteHealth)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
