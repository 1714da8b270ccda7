package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blog_analyzer/internal/core"
)

// SessionStore persists workflow snapshots keyed by session id.
// Load returns core.ErrSessionNotFound for unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, snapshot *core.Snapshot) error
	Load(ctx context.Context, sessionID string) (*core.Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

type memoryEntry struct {
	snapshot  *core.Snapshot
	expiresAt time.Time
}

// MemorySessionStore is an in-process store for development and tests
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates an in-memory store. A zero ttl never expires sessions.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save stores a copy of the snapshot
func (m *MemorySessionStore) Save(ctx context.Context, snapshot *core.Snapshot) error {
	if snapshot == nil || snapshot.SessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	entry := memoryEntry{snapshot: snapshot.Clone()}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.sessions[snapshot.SessionID] = entry
	m.mu.Unlock()
	return nil
}

// Load returns a copy of the stored snapshot
func (m *MemorySessionStore) Load(ctx context.Context, sessionID string) (*core.Snapshot, error) {
	m.mu.RLock()
	entry, exists := m.sessions[sessionID]
	m.mu.RUnlock()

	if !exists {
		return nil, core.ErrSessionNotFound
	}
	if m.expired(entry) {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		return nil, core.ErrSessionNotFound
	}

	return entry.snapshot.Clone(), nil
}

// Delete removes a session
func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[sessionID]
	if !exists || m.expired(entry) {
		delete(m.sessions, sessionID)
		return core.ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

// Exists checks if a live session exists
func (m *MemorySessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.sessions[sessionID]
	return exists && !m.expired(entry), nil
}

func (m *MemorySessionStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}
