// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
)

// WarmJobName is the name of the event list cache warming job.
const WarmJobName = "warm-event-list"

// Warmer repopulates a cache and reports how many items it loaded.
type Warmer interface {
	Refresh(ctx context.Context) (int, error)
}

// AddWarmJob registers a job that refreshes w on schedule.
func (s *Scheduler) AddWarmJob(w Warmer, schedule string) error {
	return s.Add(WarmJobName, "Refresh the cached event list from the backend", schedule, warmFunc(w, s.logger))
}

func warmFunc(w Warmer, logger *slog.Logger) JobFunc {
	return func(ctx context.Context) error {
		n, err := w.Refresh(ctx)
		if err != nil {
			return err
		}
		logger.Debug("event list cache warmed", "events", n)
		return nil
	}
}
