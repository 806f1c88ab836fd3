package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory. Entries are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (m *MemoryStore) GetItem(_ context.Context, sessionID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.sessions[sessionID][key]
	return value, ok, nil
}

func (m *MemoryStore) SetItem(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.sessions[sessionID]
	if !ok {
		entries = make(map[string]string)
		m.sessions[sessionID] = entries
	}
	entries[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(m.sessions, sessionID)
	}
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
