// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/eventboard/internal/cache"
	"github.com/olegiv/eventboard/internal/eventstore"
)

// pingTimeout bounds a single dependency check.
const pingTimeout = 3 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	backend   eventstore.Pinger
	cache     eventstore.Pinger // nil when no shared cache is configured
	stats     interface{ Stats() cache.Stats }
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. cachePinger may be nil.
func NewHealthHandler(backend, cachePinger eventstore.Pinger, version string) *HealthHandler {
	return &HealthHandler{
		backend:   backend,
		cache:     cachePinger,
		version:   version,
		startTime: time.Now(),
	}
}

// WithCacheStats adds the event cache counters to verbose responses.
func (h *HealthHandler) WithCacheStats(s interface{ Stats() cache.Stats }) *HealthHandler {
	h.stats = s
	return h
}

// Routes registers the health routes on r.
func (h *HealthHandler) Routes(r chi.Router) {
	r.Get(RouteHealth, h.Health)
	r.Get(RouteHealthLive, h.Liveness)
	r.Get(RouteHealthReady, h.Readiness)
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
}

// Health handles GET /health. It reports every dependency; ?verbose=true adds
// runtime info and cache counters.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"backend": h.check(r.Context(), h.backend),
	}
	if h.cache != nil {
		checks["cache"] = h.check(r.Context(), h.cache)
	}

	overall := "healthy"
	for _, c := range checks {
		if c.Status != "healthy" {
			overall = "degraded"
		}
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
		}
		if h.stats != nil {
			st := h.stats.Stats()
			status.Cache = &st
		}
	}

	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - ready when the backend answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	c := h.check(r.Context(), h.backend)
	if c.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) check(ctx context.Context, p eventstore.Pinger) Check {
	if p == nil {
		return Check{Status: "healthy", Message: "Not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  "healthy",
		Message: "Connected",
		Latency: latency.String(),
	}
}
