// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/seo"
)

// SEOHandler serves robots.txt and the sitemap of the event pages.
type SEOHandler struct {
	store  eventstore.Store
	isDev  bool
	logger *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. In development crawlers are turned away.
func NewSEOHandler(store eventstore.Store, isDev bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{store: store, isDev: isDev, logger: logger}
}

// Routes registers the crawler routes on r.
func (h *SEOHandler) Routes(r chi.Router) {
	r.Get(RouteRobots, h.Robots)
	r.Get(RouteSitemap, h.Sitemap)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.Robots(seo.RobotsConfig{
		SiteURL:     absoluteURL(r, ""),
		DisallowAll: h.isDev,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml. A backend failure answers 503 so crawlers retry.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list events for sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	data, err := seo.GenerateSitemap(absoluteURL(r, ""), events)
	if err != nil {
		logAndInternalError(w, r, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}
