// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides text helpers shared by the HTTP layer.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// nonSlugChars matches runs of characters outside [a-z0-9]
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a lowercase ASCII slug suitable for URLs and
// file names. Non-Latin text is transliterated first.
func Slugify(s string) string {
	result := strings.ToLower(unidecode.Unidecode(s))
	result = nonSlugChars.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// SlugifyMax is Slugify truncated to at most maxLen bytes on a word boundary
// when possible.
func SlugifyMax(s string, maxLen int) string {
	slug := Slugify(s)
	if maxLen <= 0 || len(slug) <= maxLen {
		return slug
	}
	cut := slug[:maxLen]
	if i := strings.LastIndexByte(cut, '-'); i > 0 {
		cut = cut[:i]
	}
	return strings.Trim(cut, "-")
}
