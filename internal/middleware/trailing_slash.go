// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// StripTrailingSlash redirects GET and HEAD requests for paths with a trailing
// slash to the path without it (HTTP 301). The root path is left alone.
// Other methods are routed as-is so form posts are never turned into GETs.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		readOnly := r.Method == http.MethodGet || r.Method == http.MethodHead
		if readOnly && path != "/" && strings.HasSuffix(path, "/") {
			target := strings.TrimRight(path, "/")
			if target == "" {
				target = "/"
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
