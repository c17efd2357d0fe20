package session

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]UserSession
}

// NewMemoryStore constructs an in-memory Store implementation for tests and development.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]UserSession),
	}
}

// Get returns a copy of the stored session or ErrNotFound.
func (m *memoryStore) Get(_ context.Context, id string) (*UserSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s
	return &out, nil
}

// Ensure returns the session for a user, creating it in the registration
// entry state if it does not exist yet.
func (m *memoryStore) Ensure(_ context.Context, id string) (*UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		out := s
		return &out, nil
	}

	now := time.Now()
	s := UserSession{
		ID:          id,
		CurrentMenu: MenuRegistrationName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.sessions[id] = s
	out := s
	return &out, nil
}

// Patch merges p into the stored session in a single step.
func (m *memoryStore) Patch(_ context.Context, id string, p Patch) (*UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s = p.Apply(s)
	s.UpdatedAt = time.Now()
	m.sessions[id] = s
	out := s
	return &out, nil
}
