// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig) http.Header {
	rr := httptest.NewRecorder()
	SecurityHeaders(cfg)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr.Header()
}

func TestSecurityHeaders_Production(t *testing.T) {
	h := serveWithHeaders(DefaultSecurityHeadersConfig(false))

	if got := h.Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("HSTS = %q", got)
	}
	if h.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff")
	}
	if h.Get("X-Frame-Options") != "SAMEORIGIN" {
		t.Error("missing frame options")
	}
	csp := h.Get("Content-Security-Policy")
	if !strings.Contains(csp, "img-src 'self' data: https:") {
		t.Errorf("CSP must allow remote event images: %q", csp)
	}
	if !strings.HasPrefix(csp, "default-src 'self'") {
		t.Errorf("CSP order: %q", csp)
	}
}

func TestSecurityHeaders_DevelopmentSkipsHSTS(t *testing.T) {
	h := serveWithHeaders(DefaultSecurityHeadersConfig(true))
	if h.Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must be off in development")
	}
}

func TestBuildCSP(t *testing.T) {
	got := buildCSP(map[string]string{
		"report-uri":  "/csp",
		"img-src":     "'self'",
		"default-src": "'none'",
	})
	want := "default-src 'none'; img-src 'self'; report-uri /csp"
	if got != want {
		t.Errorf("buildCSP = %q, want %q", got, want)
	}
}

func TestBuildPermissionsPolicy(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"camera": "()", "browsing-topics": "()"})
	if got != "browsing-topics=(), camera=()" {
		t.Errorf("buildPermissionsPolicy = %q", got)
	}
}
