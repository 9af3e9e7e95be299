// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/model"
)

// DeletePrompt is the question asked before an event is deleted.
const DeletePrompt = "Are you sure you want to delete this event?"

// ErrInvalidTransition is returned when an action is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid view transition")

// State is the detail page state.
type State int

const (
	StateLoading State = iota
	StateViewing
	StateEditing
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Confirmer answers a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Answer is a Confirmer with a fixed reply.
type Answer bool

// Confirm returns the fixed reply.
func (a Answer) Confirm(string) bool {
	return bool(a)
}

// DetailView is the state of one event's page, its edit modal and delete flow.
// Current is the editable draft; Original is the last backend-confirmed record.
type DetailView struct {
	ID       model.EventID
	Current  model.Event
	Original model.Event
	State    State
	Err      error

	store  eventstore.Store
	logger *slog.Logger
}

// NewDetailView creates a view for id in the loading state.
func NewDetailView(store eventstore.Store, id model.EventID, logger *slog.Logger) *DetailView {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailView{
		ID:     id,
		State:  StateLoading,
		store:  store,
		logger: logger,
	}
}

// Load fetches the event and snapshots it. On failure the view stays loading with Err set.
func (v *DetailView) Load(ctx context.Context) error {
	e, err := v.store.Get(ctx, v.ID)
	if err != nil {
		v.logger.Error("failed to get event", "event_id", v.ID, "error", err)
		v.Err = err
		return err
	}
	v.Current = e.Clone()
	v.Original = e.Clone()
	v.State = StateViewing
	v.Err = nil
	return nil
}

// Assume snapshots e as the stored record without fetching it, for actions
// that only need the id. The id is kept.
func (v *DetailView) Assume(e model.Event) error {
	if v.State != StateLoading {
		return v.invalid("assume")
	}
	e = e.Clone()
	e.ID = v.ID
	v.Current = e
	v.Original = e.Clone()
	v.State = StateViewing
	v.Err = nil
	return nil
}

// Edit opens the edit modal.
func (v *DetailView) Edit() error {
	if v.State != StateViewing {
		return v.invalid("edit")
	}
	v.State = StateEditing
	return nil
}

// SetDraft replaces the draft with form input. The id is kept.
func (v *DetailView) SetDraft(draft model.Event) error {
	if v.State != StateEditing {
		return v.invalid("set draft")
	}
	draft = draft.Clone()
	draft.ID = v.Original.ID
	v.Current = draft
	return nil
}

// Save stores the draft and returns to viewing with both snapshots replaced by
// the stored record. On failure the view stays in editing with Err set.
func (v *DetailView) Save(ctx context.Context) (model.Event, error) {
	if v.State != StateEditing {
		return model.Event{}, v.invalid("save")
	}

	saved, err := v.store.Update(ctx, v.ID, v.Current)
	if err != nil {
		v.logger.Error("failed to update event", "event_id", v.ID, "error", err)
		v.Err = err
		return model.Event{}, err
	}

	v.Current = saved.Clone()
	v.Original = saved.Clone()
	v.State = StateViewing
	v.Err = nil
	return saved, nil
}

// Cancel discards the draft and restores the original snapshot.
func (v *DetailView) Cancel() error {
	if v.State != StateEditing {
		return v.invalid("cancel")
	}
	v.Current = v.Original.Clone()
	v.State = StateViewing
	return nil
}

// Clear blanks the draft fields and stays in editing.
func (v *DetailView) Clear() error {
	if v.State != StateEditing {
		return v.invalid("clear")
	}
	v.Current.Clear()
	return nil
}

// Delete asks c for confirmation. A declined prompt issues no request and
// changes nothing. A confirmed one deletes the event and ends the view.
func (v *DetailView) Delete(ctx context.Context, c Confirmer) (bool, error) {
	if v.State != StateViewing {
		return false, v.invalid("delete")
	}
	if !c.Confirm(DeletePrompt) {
		return false, nil
	}

	if err := v.store.Delete(ctx, v.ID); err != nil {
		v.logger.Error("failed to delete event", "event_id", v.ID, "error", err)
		v.Err = err
		return false, err
	}
	v.State = StateDeleted
	v.Err = nil
	return true, nil
}

// CategoryColor returns the color token of the draft's first category.
func (v *DetailView) CategoryColor() string {
	return v.Current.Categories.Color()
}

func (v *DetailView) invalid(action string) error {
	return fmt.Errorf("%s while %s: %w", action, v.State, ErrInvalidTransition)
}
