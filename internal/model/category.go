// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is one of the fixed event categories used for filtering and color-coded display.
type Category string

// Known categories.
const (
	CategorySport         Category = "Sport"
	CategoryRelaxation    Category = "Relaxation"
	CategoryGames         Category = "Games"
	CategoryEntertainment Category = "Entertainment"
	CategoryCulture       Category = "Culture"
)

// AllCategories lists the known categories in the order the filter select offers them.
var AllCategories = []Category{
	CategorySport,
	CategoryGames,
	CategoryRelaxation,
	CategoryEntertainment,
	CategoryCulture,
}

// Display color tokens.
const (
	ColorGreen   = "green"
	ColorYellow  = "yellow"
	ColorBlue    = "blue"
	ColorPink    = "pink"
	ColorPurple  = "purple"
	ColorNeutral = "neutral"
)

// categoryDelimiter separates categories in the single-string editing form.
const categoryDelimiter = ","

// IsKnown reports whether c is one of the known categories.
func (c Category) IsKnown() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryColor maps a category to its display color token.
// Unknown or empty categories map to ColorNeutral.
func CategoryColor(c Category) string {
	switch c {
	case CategorySport:
		return ColorGreen
	case CategoryRelaxation:
		return ColorYellow
	case CategoryGames:
		return ColorBlue
	case CategoryEntertainment:
		return ColorPink
	case CategoryCulture:
		return ColorPurple
	default:
		return ColorNeutral
	}
}

// Categories is an ordered set of categories. Elements are trimmed, non-empty and unique;
// the first occurrence of a duplicate wins.
type Categories []Category

// ParseCategories splits a comma-delimited string into a normalized Categories set.
func ParseCategories(s string) Categories {
	return NewCategories(strings.Split(s, categoryDelimiter)...)
}

// NewCategories normalizes raw values into a Categories set.
func NewCategories(values ...string) Categories {
	out := make(Categories, 0, len(values))
	seen := make(map[Category]bool, len(values))
	for _, v := range values {
		c := Category(strings.TrimSpace(v))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// String joins the set with ", " for display and for the single-string editing form.
func (cs Categories) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, categoryDelimiter+" ")
}

// Strings returns the categories as plain strings.
func (cs Categories) Strings() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// First returns the first category, or "" when the set is empty.
func (cs Categories) First() Category {
	if len(cs) == 0 {
		return ""
	}
	return cs[0]
}

// Contains reports whether c is an element of the set.
func (cs Categories) Contains(c Category) bool {
	for _, have := range cs {
		if have == c {
			return true
		}
	}
	return false
}

// Color is the display color of the first category.
func (cs Categories) Color() string {
	return CategoryColor(cs.First())
}

// Equal reports element-wise equality.
func (cs Categories) Equal(other Categories) bool {
	if len(cs) != len(other) {
		return false
	}
	for i := range cs {
		if cs[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with cs.
func (cs Categories) Clone() Categories {
	if cs == nil {
		return nil
	}
	out := make(Categories, len(cs))
	copy(out, cs)
	return out
}

// MarshalJSON always emits a JSON array, never null.
func (cs Categories) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Strings())
}

// UnmarshalJSON accepts an array of strings, a single comma-delimited string, or null.
// The backend does not guarantee which shape it returns.
func (cs *Categories) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*cs = Categories{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding categories string: %w", err)
		}
		*cs = ParseCategories(s)
		return nil
	case data[0] == '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("decoding categories array: %w", err)
		}
		*cs = NewCategories(values...)
		return nil
	default:
		return fmt.Errorf("categories: unexpected JSON %s", string(data))
	}
}
