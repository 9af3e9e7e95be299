// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/eventboard/internal/model"
)

var stamp = time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

func TestExport(t *testing.T) {
	e := model.Event{
		ID:          "7",
		Title:       "Chess night",
		Description: "Bring a board",
		StartTime:   "2024-05-01T18:00:00Z",
		EndTime:     "2024-05-01T21:30:00Z",
		Categories:  model.NewCategories("Games", "Culture"),
	}

	out, err := Export(e, "http://localhost:8080/event/7", stamp)
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "PRODID:"+ProductID)
	assert.Contains(t, out, "UID:event-7@eventboard")
	assert.Contains(t, out, "SUMMARY:Chess night")
	assert.Contains(t, out, "DESCRIPTION:Bring a board")
	assert.Contains(t, out, "DTSTART:20240501T180000Z")
	assert.Contains(t, out, "DTEND:20240501T213000Z")
	assert.Contains(t, out, "CATEGORIES:")
	assert.Contains(t, out, "Games")
	assert.Contains(t, out, "URL:http://localhost:8080/event/7")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExport_MissingEndUsesDefaultDuration(t *testing.T) {
	e := model.Event{ID: "1", Title: "Yoga", StartTime: "2024-05-01T07:00:00Z"}

	out, err := Export(e, "", stamp)
	require.NoError(t, err)

	assert.Contains(t, out, "DTEND:20240501T080000Z")
	assert.NotContains(t, out, "URL:")
	assert.NotContains(t, out, "DESCRIPTION:")
}

func TestExport_EndBeforeStart(t *testing.T) {
	e := model.Event{ID: "1", Title: "Yoga", StartTime: "2024-05-01T07:00:00Z", EndTime: "2024-05-01T06:00:00Z"}

	out, err := Export(e, "", stamp)
	require.NoError(t, err)
	assert.Contains(t, out, "DTEND:20240501T080000Z")
}

func TestExport_NoStartTime(t *testing.T) {
	_, err := Export(model.Event{ID: "1", Title: "Someday"}, "", stamp)
	assert.True(t, errors.Is(err, ErrNoStartTime))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		in   model.Event
		want string
	}{
		{"title", model.Event{ID: "1", Title: "Chess night"}, "chess-night.ics"},
		{"accents", model.Event{ID: "1", Title: "Fête de la Musique"}, "fete-de-la-musique.ics"},
		{"empty title", model.Event{ID: "42"}, "event-42.ics"},
		{"symbols only", model.Event{ID: "ab-1", Title: "!!!"}, "event-ab-1.ics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in))
		})
	}
}
