// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/olegiv/eventboard/internal/ics"
)

// ExportICS handles GET /event/{id}/ics - downloads the event as an iCalendar file.
func (h *EventsHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	dv, ok := h.loadDetail(w, r)
	if !ok {
		return
	}

	e := dv.Current
	body, err := ics.Export(e, absoluteURL(r, eventPath(e.ID.String(), "")), time.Now())
	if err != nil {
		if errors.Is(err, ics.ErrNoStartTime) {
			flashError(w, r, h.renderer, eventPath(e.ID.String(), ""), flashExportFailed)
			return
		}
		logAndInternalError(w, r, "failed to export event", "event_id", e.ID, "error", err)
		return
	}

	w.Header().Set("Content-Type", ics.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": ics.Filename(e),
	}))
	_, _ = w.Write([]byte(body))
}
