// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the HTTP session manager and the per-visitor
// state it carries: flash messages and unsaved event drafts.
package session

import (
	"context"
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/olegiv/eventboard/internal/model"
)

// Session keys.
const (
	FlashKey     = "flash"
	FlashTypeKey = "flash_type"
	LangKey      = "lang"

	// DraftNewKey holds the create modal's draft.
	DraftNewKey = "draft:new"
)

func init() {
	gob.Register(model.Event{})
}

// New creates a session manager backed by the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := newManager(isDev)
	sm.Store = sqlite3store.New(db)
	return sm
}

// NewMemory creates a session manager that keeps sessions in process memory.
func NewMemory(isDev bool) *scs.SessionManager {
	sm := newManager(isDev)
	sm.Store = memstore.New()
	return sm
}

func newManager(isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.Name = "eventboard_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	return sm
}

// DraftKey returns the session key holding the edit draft of event id.
func DraftKey(id model.EventID) string {
	return "draft:event:" + id.String()
}

// PutDraft stores an unsaved draft under key.
func PutDraft(ctx context.Context, sm *scs.SessionManager, key string, draft model.Event) {
	sm.Put(ctx, key, draft.Clone())
}

// GetDraft returns the draft stored under key, if any.
func GetDraft(ctx context.Context, sm *scs.SessionManager, key string) (model.Event, bool) {
	draft, ok := sm.Get(ctx, key).(model.Event)
	if !ok {
		return model.Event{}, false
	}
	return draft.Clone(), true
}

// DropDraft forgets the draft stored under key.
func DropDraft(ctx context.Context, sm *scs.SessionManager, key string) {
	sm.Remove(ctx, key)
}
