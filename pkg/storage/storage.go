package storage

import (
	"context"
	"errors"
)

// ErrSessionRequired is returned when a scoped call carries no session id.
var ErrSessionRequired = errors.New("storage: session id is required")

// Store persists string values per visitor session.
type Store interface {
	GetItem(ctx context.Context, sessionID, key string) (string, bool, error)
	SetItem(ctx context.Context, sessionID, key, value string) error
	RemoveItem(ctx context.Context, sessionID, key string) error
}

// KV is the session-bound view handed to the cart and account components.
type KV interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Scoped binds a Store to one session id.
type Scoped struct {
	store     Store
	sessionID string
}

// Scope returns a KV that reads and writes only sessionID's entries.
func Scope(store Store, sessionID string) *Scoped {
	return &Scoped{store: store, sessionID: sessionID}
}

// SessionID returns the bound session.
func (s *Scoped) SessionID() string {
	return s.sessionID
}

func (s *Scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	if s.sessionID == "" {
		return "", false, ErrSessionRequired
	}
	return s.store.GetItem(ctx, s.sessionID, key)
}

func (s *Scoped) SetItem(ctx context.Context, key, value string) error {
	if s.sessionID == "" {
		return ErrSessionRequired
	}
	return s.store.SetItem(ctx, s.sessionID, key, value)
}

func (s *Scoped) RemoveItem(ctx context.Context, key string) error {
	if s.sessionID == "" {
		return ErrSessionRequired
	}
	return s.store.RemoveItem(ctx, s.sessionID, key)
}
