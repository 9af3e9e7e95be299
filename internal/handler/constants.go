// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/url"

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the events list.
	RouteRoot = "/"
	// RouteEvents receives create submissions.
	RouteEvents = "/events"
	// RouteEventsCancel closes the create modal.
	RouteEventsCancel = "/events/cancel"

	// RouteEvent is the detail page of one event.
	RouteEvent = "/event/{id}"
	// RouteEventEdit opens the edit modal.
	RouteEventEdit = RouteEvent + "/edit"
	// RouteEventClear blanks the edit draft.
	RouteEventClear = RouteEvent + "/clear"
	// RouteEventCancel discards the edit draft.
	RouteEventCancel = RouteEvent + "/cancel"
	// RouteEventDelete asks for and performs deletion.
	RouteEventDelete = RouteEvent + "/delete"
	// RouteEventICS exports the event as iCalendar.
	RouteEventICS = RouteEvent + "/ics"

	// RouteHealth is the health summary.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"

	RouteRobots  = "/robots.txt"
	RouteSitemap = "/sitemap.xml"
)

// Redirect targets.
const (
	redirectList   = "/"
	redirectCreate = "/?create=1"
)

// Page template names.
const (
	pageEvents        = "events"
	pageEvent         = "event"
	pageConfirmDelete = "confirm_delete"
	pageError         = "error"
)

// Flash message keys, translated at render time.
const (
	flashCreated      = "flash.created"
	flashUpdated      = "flash.updated"
	flashDeleted      = "flash.deleted"
	flashCreateFailed = "flash.create_failed"
	flashUpdateFailed = "flash.update_failed"
	flashDeleteFailed = "flash.delete_failed"
	flashExportFailed = "flash.export_failed"
	flashNotFound     = "flash.not_found"
	flashInvalidForm  = "flash.invalid_form"
	flashRateLimited  = "flash.rate_limited"
)

// eventPath returns the detail page path of id, with optional suffix.
func eventPath(id string, suffix string) string {
	return "/event/" + url.PathEscape(id) + suffix
}
