// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/model"
	"github.com/olegiv/eventboard/internal/render"
	"github.com/olegiv/eventboard/internal/session"
	"github.com/olegiv/eventboard/internal/view"
)

// EventsHandler serves the events list, the event pages and their modals.
// Pages are rebuilt per request from the store; unsaved drafts live in the
// session. Each action issues at most one backend request.
type EventsHandler struct {
	store          eventstore.Store
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(store eventstore.Store, renderer *render.Renderer, sm *scs.SessionManager, logger *slog.Logger) *EventsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventsHandler{
		store:          store,
		renderer:       renderer,
		sessionManager: sm,
		logger:         logger,
	}
}

// Routes registers the event routes on r.
func (h *EventsHandler) Routes(r chi.Router) {
	r.Get(RouteRoot, h.List)
	r.Post(RouteEvents, h.Create)
	r.Post(RouteEventsCancel, h.CancelCreate)

	r.Get(RouteEvent, h.Show)
	r.Post(RouteEvent, h.Save)
	r.Put(RouteEvent, h.Save)
	r.Get(RouteEventEdit, h.Edit)
	r.Post(RouteEventClear, h.Clear)
	r.Post(RouteEventCancel, h.CancelEdit)
	r.Get(RouteEventDelete, h.ConfirmDelete)
	r.Post(RouteEventDelete, h.Delete)
	r.Delete(RouteEventDelete, h.Delete)
	r.Get(RouteEventICS, h.ExportICS)
}

// List handles GET / - the filtered events list, with the create modal when ?create=1.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lv := view.NewListView(h.store, h.logger)
	_ = lv.Load(r.Context())

	data := ListPage{
		Search:     q.Get("q"),
		Category:   strings.TrimSpace(q.Get("category")),
		LoadFailed: lv.Err != nil,
	}
	data.Events = lv.Visible(data.Search, model.Category(data.Category))

	if q.Get("create") == "1" {
		lv.OpenCreate()
		if draft, ok := session.GetDraft(r.Context(), h.sessionManager, session.DraftNewKey); ok {
			lv.SetDraft(draft)
		}
		data.Form = createForm(lv.Draft)
	}

	h.render(w, r, http.StatusOK, pageEvents, "", data)
}

// Create handles POST /events - submits the create modal.
// On failure the modal is reopened with the draft intact.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectCreate) {
		return
	}

	lv := view.NewListView(h.store, h.logger)
	lv.OpenCreate()
	lv.SetDraft(eventFromForm(r))

	created, err := lv.Submit(r.Context())
	if err != nil {
		session.PutDraft(r.Context(), h.sessionManager, session.DraftNewKey, lv.Draft)
		flashError(w, r, h.renderer, redirectCreate, flashCreateFailed)
		return
	}

	session.DropDraft(r.Context(), h.sessionManager, session.DraftNewKey)
	h.logger.InfoContext(r.Context(), "event created", "event_id", created.ID, "title", created.Title)
	flashSuccess(w, r, h.renderer, redirectList, flashCreated)
}

// CancelCreate handles POST /events/cancel - closes the create modal and discards the draft.
func (h *EventsHandler) CancelCreate(w http.ResponseWriter, r *http.Request) {
	lv := view.NewListView(h.store, h.logger)
	lv.CloseCreate()
	session.DropDraft(r.Context(), h.sessionManager, session.DraftNewKey)
	http.Redirect(w, r, redirectList, http.StatusSeeOther)
}

// Show handles GET /event/{id}.
func (h *EventsHandler) Show(w http.ResponseWriter, r *http.Request) {
	dv, ok := h.loadDetail(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageEvent, dv.Current.Title, DetailPage{Event: dv.Current})
}

// Edit handles GET /event/{id}/edit - the event page with the edit modal open.
// A draft kept in the session (after a failed save or a clear) is restored.
func (h *EventsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	dv, ok := h.loadDetail(w, r)
	if !ok {
		return
	}
	_ = dv.Edit()
	if draft, found := session.GetDraft(r.Context(), h.sessionManager, session.DraftKey(dv.ID)); found {
		_ = dv.SetDraft(draft)
	}

	h.render(w, r, http.StatusOK, pageEvent, dv.Original.Title, DetailPage{
		Event: dv.Original,
		Form:  editForm(dv.Current),
	})
}

// Save handles POST/PUT /event/{id} - stores the edit draft as a full replacement.
// On success the list is shown; on failure the modal is reopened with the draft.
func (h *EventsHandler) Save(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)
	editURL := eventPath(id.String(), "/edit")
	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	dv := h.editView(r, id)
	_ = dv.SetDraft(eventFromForm(r))

	if _, err := dv.Save(r.Context()); err != nil {
		if eventstore.IsNotFound(err) {
			session.DropDraft(r.Context(), h.sessionManager, session.DraftKey(id))
			flashError(w, r, h.renderer, redirectList, flashNotFound)
			return
		}
		session.PutDraft(r.Context(), h.sessionManager, session.DraftKey(id), dv.Current)
		flashError(w, r, h.renderer, editURL, flashUpdateFailed)
		return
	}

	session.DropDraft(r.Context(), h.sessionManager, session.DraftKey(id))
	h.logger.InfoContext(r.Context(), "event updated", "event_id", id)
	flashSuccess(w, r, h.renderer, redirectList, flashUpdated)
}

// Clear handles POST /event/{id}/clear - blanks the edit draft and keeps the modal open.
func (h *EventsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)
	dv := h.editView(r, id)
	_ = dv.Clear()

	session.PutDraft(r.Context(), h.sessionManager, session.DraftKey(id), dv.Current)
	http.Redirect(w, r, eventPath(id.String(), "/edit"), http.StatusSeeOther)
}

// CancelEdit handles POST /event/{id}/cancel - discards the draft and shows the stored event.
func (h *EventsHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)
	dv := h.editView(r, id)
	_ = dv.Cancel()

	session.DropDraft(r.Context(), h.sessionManager, session.DraftKey(id))
	http.Redirect(w, r, eventPath(id.String(), ""), http.StatusSeeOther)
}

// ConfirmDelete handles GET /event/{id}/delete - asks before deleting.
func (h *EventsHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	dv, ok := h.loadDetail(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageConfirmDelete, dv.Current.Title, ConfirmDeletePage{
		Event:  dv.Current,
		Prompt: view.DeletePrompt,
	})
}

// Delete handles POST/DELETE /event/{id}/delete. A form post must carry
// confirm=yes; anything else counts as declined and touches nothing.
// The DELETE method is itself the confirmation.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)
	answer := view.Answer(r.Method == http.MethodDelete || r.FormValue(fieldConfirm) == "yes")
	if !answer.Confirm(view.DeletePrompt) {
		http.Redirect(w, r, eventPath(id.String(), ""), http.StatusSeeOther)
		return
	}

	dv := view.NewDetailView(h.store, id, h.logger)
	_ = dv.Assume(model.Event{ID: id})
	if _, err := dv.Delete(r.Context(), answer); err != nil {
		if eventstore.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectList, flashNotFound)
			return
		}
		flashError(w, r, h.renderer, eventPath(id.String(), ""), flashDeleteFailed)
		return
	}

	session.DropDraft(r.Context(), h.sessionManager, session.DraftKey(id))
	h.logger.InfoContext(r.Context(), "event deleted", "event_id", id)
	flashSuccess(w, r, h.renderer, redirectList, flashDeleted)
}

// loadDetail fetches the event of a GET page. Failures render the event page
// with a notice and report false.
func (h *EventsHandler) loadDetail(w http.ResponseWriter, r *http.Request) (*view.DetailView, bool) {
	dv := view.NewDetailView(h.store, eventID(r), h.logger)
	if err := dv.Load(r.Context()); err != nil {
		if eventstore.IsNotFound(err) {
			h.render(w, r, http.StatusNotFound, pageEvent, "", DetailPage{NotFound: true})
			return nil, false
		}
		h.render(w, r, http.StatusBadGateway, pageEvent, "", DetailPage{LoadFailed: true})
		return nil, false
	}
	return dv, true
}

// editView returns a view of id in the editing state, seeded with the session
// draft when one exists. It makes no backend request.
func (h *EventsHandler) editView(r *http.Request, id model.EventID) *view.DetailView {
	dv := view.NewDetailView(h.store, id, h.logger)
	_ = dv.Assume(model.Event{ID: id})
	_ = dv.Edit()
	if draft, ok := session.GetDraft(r.Context(), h.sessionManager, session.DraftKey(id)); ok {
		_ = dv.SetDraft(draft)
	}
	return dv
}
