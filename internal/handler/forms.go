// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/eventboard/internal/model"
)

// Form field names shared by the create and edit modals.
const (
	fieldTitle        = "title"
	fieldDescription  = "description"
	fieldImage        = "image"
	fieldImageCreator = "imageCreator"
	fieldStartTime    = "startTime"
	fieldEndTime      = "endTime"
	fieldCategories   = "categories"
	fieldCreator      = "creator"
	fieldConfirm      = "confirm"
)

// FormView describes one event modal.
type FormView struct {
	Heading      string // i18n key
	Submit       string // i18n key
	Action       string
	CancelAction string
	ClearAction  string // empty hides the clear button
	Event        model.Event

	ShowImageCreator bool
}

// ListPage is the data of the events list page.
type ListPage struct {
	Events     []model.Event
	Search     string
	Category   string
	LoadFailed bool
	Form       *FormView
}

// DetailPage is the data of an event page.
type DetailPage struct {
	Event      model.Event
	NotFound   bool
	LoadFailed bool
	Form       *FormView
}

// ConfirmDeletePage is the data of the delete confirmation page.
type ConfirmDeletePage struct {
	Event  model.Event
	Prompt string
}

// ErrorPage is the data of the error page.
type ErrorPage struct {
	Status  int
	Message string // i18n key
}

// eventFromForm reads an event draft from a parsed form. Categories may be
// sent as one comma-delimited field or as repeated fields.
func eventFromForm(r *http.Request) model.Event {
	return model.Event{
		Title:        r.PostFormValue(fieldTitle),
		Description:  r.PostFormValue(fieldDescription),
		Image:        strings.TrimSpace(r.PostFormValue(fieldImage)),
		ImageCreator: strings.TrimSpace(r.PostFormValue(fieldImageCreator)),
		StartTime:    r.PostFormValue(fieldStartTime),
		EndTime:      r.PostFormValue(fieldEndTime),
		Categories:   model.ParseCategories(strings.Join(r.PostForm[fieldCategories], ",")),
		Creator:      r.PostFormValue(fieldCreator),
	}
}

func createForm(draft model.Event) *FormView {
	return &FormView{
		Heading:      "form.create_heading",
		Submit:       "form.submit",
		Action:       RouteEvents,
		CancelAction: RouteEventsCancel,
		Event:        draft,
	}
}

func editForm(draft model.Event) *FormView {
	id := draft.ID.String()
	return &FormView{
		Heading:          "form.edit_heading",
		Submit:           "form.save",
		Action:           eventPath(id, ""),
		CancelAction:     eventPath(id, "/cancel"),
		ClearAction:      eventPath(id, "/clear"),
		Event:            draft,
		ShowImageCreator: true,
	}
}
