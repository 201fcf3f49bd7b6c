// internal/store/memory.go
//
// In-memory implementation of the session key/value Store interface.
// This is a lightweight persistence layer used when durability is not
// required, primarily in development/testing.
//
// Characteristics:
//   - Stores raw JSON values keyed by (session id, key) in nested maps.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing keys on Load().

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when a session has no value under the
// requested key.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for session snapshots. Values
// are opaque JSON blobs; the session adapter owns their shape.
// Implementations may be backed by memory (this package) or SQLite.
type Store interface {
	// Save persists or replaces the value under (sessionID, key).
	Save(ctx context.Context, sessionID, key string, value []byte) error

	// Load retrieves the value under (sessionID, key).
	// Returns ErrNotFound if the key has never been written.
	Load(ctx context.Context, sessionID, key string) ([]byte, error)

	// Delete removes the value under (sessionID, key). Missing keys are
	// not an error.
	Delete(ctx context.Context, sessionID, key string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                 // guards sessions map
	sessions map[string]map[string][]byte // sessionID -> key -> value
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]map[string][]byte)}
}

// Save adds or replaces the value in the map.
func (m *memory) Save(ctx context.Context, sessionID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kv, ok := m.sessions[sessionID]
	if !ok {
		kv = make(map[string][]byte)
		m.sessions[sessionID] = kv
	}
	kv[key] = append([]byte(nil), value...)
	return nil
}

// Load looks up a value by (sessionID, key).
func (m *memory) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if kv, ok := m.sessions[sessionID]; ok {
		if v, ok := kv[key]; ok {
			return append([]byte(nil), v...), nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes a value if present.
func (m *memory) Delete(ctx context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if kv, ok := m.sessions[sessionID]; ok {
		delete(kv, key)
	}
	return nil
}
