// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventID is an opaque, server-assigned event identifier.
// It decodes from a JSON string or a JSON number.
type EventID string

// String returns the identifier text.
func (id EventID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *EventID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding event id: %w", err)
		}
		*id = EventID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding event id: %w", err)
	}
	*id = EventID(n.String())
	return nil
}

// Event is the single resource type held by the backend.
type Event struct {
	ID           EventID    `json:"id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	ImageCreator string     `json:"imageCreator,omitempty"`
	Creator      string     `json:"creator,omitempty"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	Categories   Categories `json:"categories"`
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	e.Categories = e.Categories.Clone()
	return e
}

// Equal reports deep equality of two events.
func (e Event) Equal(other Event) bool {
	return e.ID == other.ID &&
		e.Title == other.Title &&
		e.Description == other.Description &&
		e.Image == other.Image &&
		e.ImageCreator == other.ImageCreator &&
		e.Creator == other.Creator &&
		e.StartTime == other.StartTime &&
		e.EndTime == other.EndTime &&
		e.Categories.Equal(other.Categories)
}

// Clear blanks the editable fields and keeps the identifier.
func (e *Event) Clear() {
	e.Creator = ""
	e.ImageCreator = ""
	e.Title = ""
	e.Description = ""
	e.Image = ""
	e.StartTime = ""
	e.EndTime = ""
	e.Categories = Categories{}
}

// Start parses StartTime.
func (e Event) Start() (time.Time, bool) {
	return ParseTime(e.StartTime)
}

// End parses EndTime.
func (e Event) End() (time.Time, bool) {
	return ParseTime(e.EndTime)
}

// timeLayouts are the ISO-like shapes the backend and datetime-local inputs produce.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses an ISO-like timestamp. Values without a zone are read as local time.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DatetimeLocalLayout is the value format of an HTML datetime-local input.
const DatetimeLocalLayout = "2006-01-02T15:04"

// DatetimeLocal converts a stored timestamp to a datetime-local input value.
// Unparseable values are returned unchanged.
func DatetimeLocal(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return s
	}
	return t.In(time.Local).Format(DatetimeLocalLayout)
}
