package session

import (
	"context"
	"fmt"

	"blog_analyzer/internal/core"
	"blog_analyzer/internal/storage"
	"blog_analyzer/src/logger"

	"github.com/google/uuid"
)

// Workflow runs a snapshot through the analysis pipeline
type Workflow interface {
	Start(ctx context.Context, sessionID string) (*core.Snapshot, error)
	Resume(ctx context.Context, snapshot *core.Snapshot, input string) (*core.Snapshot, error)
}

// Manager creates and resumes sessions. Calls for the same session id run one at a time;
// different ids proceed in parallel.
type Manager struct {
	workflow Workflow
	store    storage.SessionStore
	locks    *keyedMutex
	newID    func() (string, error)
}

// NewManager creates a session manager
func NewManager(workflow Workflow, store storage.SessionStore) *Manager {
	return &Manager{
		workflow: workflow,
		store:    store,
		locks:    newKeyedMutex(),
		newID:    newSessionID,
	}
}

func newSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return id.String(), nil
}

// Create starts a new session, which suspends waiting for the article
func (m *Manager) Create(ctx context.Context) (*core.Snapshot, error) {
	id, err := m.newID()
	if err != nil {
		return nil, err
	}

	unlock := m.locks.Lock(id)
	defer unlock()

	snapshot, err := m.workflow.Start(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if err := m.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log := logger.With("session")
	log.Info().Str("session_id", id).Str("step", string(snapshot.Step)).Msg("🆕 Session created")

	return snapshot, nil
}

// Resume feeds input into a suspended session. Unknown ids return core.ErrSessionNotFound
// and completed sessions return core.ErrSessionTerminal; neither changes stored state.
func (m *Manager) Resume(ctx context.Context, sessionID string, input string) (*core.Snapshot, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	current, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Step == core.StepTerminal {
		return nil, core.ErrSessionTerminal
	}

	next, err := m.workflow.Resume(ctx, current, input)
	if err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}

	if err := m.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log := logger.With("session")
	log.Info().
		Str("session_id", sessionID).
		Str("from", string(current.Step)).
		Str("to", string(next.Step)).
		Bool("suspended", next.Suspended()).
		Msg("🔄 Session resumed")

	return next, nil
}

// Get returns the current snapshot of a session
func (m *Manager) Get(ctx context.Context, sessionID string) (*core.Snapshot, error) {
	return m.store.Load(ctx, sessionID)
}

// Delete removes a session
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}

	log := logger.With("session")
	log.Info().Str("session_id", sessionID).Msg("🗑️ Session deleted")
	return nil
}
