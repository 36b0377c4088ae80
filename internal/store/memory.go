package store

import (
	"sync"

	"github.com/teletest/quizbot/internal/domain/session"
)

// MemoryStore is an in-memory SessionStore. It mirrors the value semantics
// of the durable store (callers never share a live session through it), so
// the engine can be tested without a database file.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*session.Session
}

func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*session.Session)}
}

func (m *MemoryStore) Get(userID int64) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.UserID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}
