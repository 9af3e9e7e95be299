// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/eventboard/internal/render"
)

// ErrorHandler renders the HTML error pages used by the router.
type ErrorHandler struct {
	renderer *render.Renderer
}

// NewErrorHandler creates a new ErrorHandler.
func NewErrorHandler(renderer *render.Renderer) *ErrorHandler {
	return &ErrorHandler{renderer: renderer}
}

// NotFound renders the 404 page.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "error.not_found")
}

// MethodNotAllowed renders the 405 page.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusMethodNotAllowed, "error.method_not_allowed")
}

// RateLimited answers a rejected form submission: it flashes a notice and
// sends the browser back to the page it came from.
func (h *ErrorHandler) RateLimited(w http.ResponseWriter, r *http.Request) {
	flashError(w, r, h.renderer, localReferer(r, redirectList), flashRateLimited)
}

func (h *ErrorHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	err := h.renderer.RenderStatus(w, r, status, pageError, render.TemplateData{
		Title: http.StatusText(status),
		Data:  ErrorPage{Status: status, Message: message},
	})
	if err != nil {
		logAndHTTPError(w, r, http.StatusText(status), status, "failed to render error page", "error", err)
	}
}
