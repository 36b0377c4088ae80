package store

import (
	"errors"

	"github.com/teletest/quizbot/internal/domain/session"
)

// ErrNotFound is returned when no session exists for the given user.
var ErrNotFound = errors.New("session not found")

// SessionStore persists one session per user. Save is an upsert, never a
// merge. Calls for the same user are atomic with respect to each other;
// calls for different users may proceed concurrently. Serializing the
// surrounding read-modify-write cycle is the engine's job, not the store's.
type SessionStore interface {
	Get(userID int64) (*session.Session, error)
	Save(s *session.Session) error
	Delete(userID int64) error
}
