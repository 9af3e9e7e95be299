// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ics exports events as iCalendar documents.
package ics

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/olegiv/eventboard/internal/model"
	"github.com/olegiv/eventboard/internal/util"
)

// ProductID identifies this application in exported calendars.
const ProductID = "-//eventboard//events//EN"

// ContentType is the media type of an exported calendar.
const ContentType = "text/calendar; charset=utf-8"

// defaultDuration is used when an event has no usable end time.
const defaultDuration = time.Hour

// maxFilenameLen bounds the slug part of an export filename.
const maxFilenameLen = 60

// ErrNoStartTime is returned for events whose start time cannot be parsed.
var ErrNoStartTime = errors.New("event has no valid start time")

// Export renders e as a single-event calendar. eventURL, when set, links
// back to the event page. now is used as the DTSTAMP.
func Export(e model.Event, eventURL string, now time.Time) (string, error) {
	start, ok := e.Start()
	if !ok {
		return "", ErrNoStartTime
	}
	end, ok := e.End()
	if !ok || !end.After(start) {
		end = start.Add(defaultDuration)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	ev := cal.AddEvent(UID(e.ID))
	ev.SetDtStampTime(now)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(e.Title)
	if e.Description != "" {
		ev.SetDescription(e.Description)
	}
	if eventURL != "" {
		ev.SetURL(eventURL)
	}
	if len(e.Categories) > 0 {
		ev.SetProperty(ical.ComponentPropertyCategories, strings.Join(e.Categories.Strings(), ","))
	}

	return cal.Serialize(), nil
}

// UID returns the stable iCalendar UID of an event.
func UID(id model.EventID) string {
	return "event-" + id.String() + "@eventboard"
}

// Filename returns the download name for an exported event.
func Filename(e model.Event) string {
	name := util.SlugifyMax(e.Title, maxFilenameLen)
	if name == "" {
		name = "event-" + util.Slugify(e.ID.String())
	}
	return strings.TrimSuffix(name, "-") + ".ics"
}
