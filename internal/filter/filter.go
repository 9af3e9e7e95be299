// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package filter derives the visible subset of the event list from the search
// box and the category select.
package filter

import (
	"strings"

	"github.com/olegiv/eventboard/internal/model"
)

// Events returns the events whose title contains searchTerm (case-insensitive)
// and, when selectedCategory is set, whose categories contain it exactly.
// Input order is preserved and the input slice is not modified.
func Events(events []model.Event, searchTerm string, selectedCategory model.Category) []model.Event {
	needle := strings.ToLower(searchTerm)
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if Match(e, needle, selectedCategory) {
			out = append(out, e)
		}
	}
	return out
}

// Match reports whether a single event passes the filter. needle must already be lower-cased.
func Match(e model.Event, needle string, selectedCategory model.Category) bool {
	if !strings.Contains(strings.ToLower(e.Title), needle) {
		return false
	}
	if selectedCategory == "" {
		return true
	}
	return e.Categories.Contains(selectedCategory)
}
