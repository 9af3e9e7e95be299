// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo provides the sample events served when no backend is configured.
package demo

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/eventboard/internal/model"
)

// ResetSchedule is how often the demo store is restored to the sample events.
const ResetSchedule = "@daily"

// ResetJobName is the scheduler name of the demo reset job.
const ResetJobName = "demo-reset"

// Resetter replaces a store's contents.
type Resetter interface {
	Reset(events ...model.Event)
}

// Events returns the sample events, with times relative to now so the demo
// always shows upcoming events.
func Events(now time.Time) []model.Event {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	at := func(days, hour, minute int) string {
		return day.AddDate(0, 0, days).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute).Format(time.RFC3339)
	}

	return []model.Event{
		{
			ID:          "1",
			Title:       "Sunday football in the park",
			Description: "Friendly five-a-side match. **Everyone welcome**, bring water and a pair of shin guards.",
			Image:       "https://images.unsplash.com/photo-1574629810360-7efbbe195018",
			Creator:     "Sam",
			StartTime:   at(2, 10, 0),
			EndTime:     at(2, 12, 0),
			Categories:  model.NewCategories(string(model.CategorySport)),
		},
		{
			ID:          "2",
			Title:       "Board game evening",
			Description: "Catan, Carcassonne and a stack of party games. Snacks provided.",
			Creator:     "Noor",
			StartTime:   at(3, 19, 30),
			EndTime:     at(3, 23, 0),
			Categories:  model.NewCategories(string(model.CategoryGames), string(model.CategoryEntertainment)),
		},
		{
			ID:           "3",
			Title:        "Museum late night",
			Description:  "Guided tour through the new exhibition followed by live music in the hall.",
			Image:        "https://images.unsplash.com/photo-1566127444979-b3d2b654e3d7",
			ImageCreator: "https://unsplash.com",
			StartTime:    at(5, 20, 0),
			EndTime:      at(5, 23, 30),
			Categories:   model.NewCategories(string(model.CategoryCulture), string(model.CategoryEntertainment)),
		},
		{
			ID:          "4",
			Title:       "Morning yoga",
			Description: "A gentle hour of stretching. Mats are available at the entrance.",
			Creator:     "Lin",
			StartTime:   at(1, 7, 30),
			EndTime:     at(1, 8, 30),
			Categories:  model.NewCategories(string(model.CategoryRelaxation), string(model.CategorySport)),
		},
		{
			ID:          "5",
			Title:       "Chess club",
			Description: "Weekly rapid tournament, all levels.",
			StartTime:   at(4, 18, 0),
			EndTime:     at(4, 21, 0),
			Categories:  model.NewCategories(string(model.CategoryGames)),
		},
	}
}

// Reset restores r to the sample events.
func Reset(_ context.Context, r Resetter, now time.Time) error {
	events := Events(now)
	r.Reset(events...)
	slog.Info("demo events reset", "events", len(events))
	return nil
}
