// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/eventboard/internal/session"
)

func TestErrorHandler_Pages(t *testing.T) {
	sm := session.NewMemory(true)
	h := NewErrorHandler(newTestRenderer(t, sm))

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode int
		wantText string
	}{
		{"not found", h.NotFound, http.StatusNotFound, "Page not found."},
		{"method not allowed", h.MethodNotAllowed, http.StatusMethodNotAllowed, "This action is not allowed here."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			sm.LoadAndSave(tt.handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantText)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestErrorHandler_RateLimited(t *testing.T) {
	sm := session.NewMemory(true)
	h := NewErrorHandler(newTestRenderer(t, sm))

	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"same host", "http://example.com/event/1?x=1", "/event/1?x=1"},
		{"relative", "/event/2", "/event/2"},
		{"other host", "https://evil.example/phish", "/"},
		{"none", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://example.com/events", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			w := httptest.NewRecorder()

			var flash string
			sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				h.RateLimited(w, r)
				flash = sm.GetString(r.Context(), session.FlashKey)
			})).ServeHTTP(w, req)

			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
			assert.Equal(t, flashRateLimited, flash)
		})
	}
}

func TestErrorHandler_MethodNotAllowedRoute(t *testing.T) {
	app := newTestApp(t, seedEvents()...)

	resp, body := app.do(t, http.MethodPatch, "/event/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Contains(t, body, "This action is not allowed here.")
}
