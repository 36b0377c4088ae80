// Package engine drives one user's progress through a quiz: start,
// option toggling, submission, completion.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/teletest/quizbot/internal/domain/question"
	"github.com/teletest/quizbot/internal/domain/session"
	"github.com/teletest/quizbot/internal/store"
)

// ErrNoSession is returned when an action targets a user with no stored
// session. The caller should prompt the user to start over.
var ErrNoSession = errors.New("no active session")

// Engine applies quiz transitions against the session store. Every
// transition runs as a full get-mutate-save cycle inside a per-user
// critical section, so a rapid double tap cannot lose an update.
// Transitions for different users run concurrently.
type Engine struct {
	bank   *question.Bank
	store  store.SessionStore
	logger *slog.Logger

	randMu sync.Mutex
	rand   *rand.Rand

	lockMu sync.Mutex
	locks  map[int64]*sync.Mutex
}

// New creates an Engine. src seeds question sampling; pass nil for a
// time-seeded source, or a fixed seed to make sampling reproducible.
func New(bank *question.Bank, st store.SessionStore, logger *slog.Logger, src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{
		bank:   bank,
		store:  st,
		logger: logger,
		rand:   rand.New(src),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Start samples a fresh 10-question draw for the user and persists it,
// replacing any session already in progress.
func (e *Engine) Start(userID int64) (*session.Session, error) {
	mu := e.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	e.randMu.Lock()
	s, err := session.New(userID, e.bank.Questions, e.rand)
	e.randMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := e.store.Save(s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	e.logger.Info("quiz started", "user_id", userID, "questions", len(s.Questions))
	return s, nil
}

// Restart discards all prior progress and starts over. Identical to Start;
// it exists because the transport exposes it as a separate action.
func (e *Engine) Restart(userID int64) (*session.Session, error) {
	return e.Start(userID)
}

// ToggleOption flips option n for the user's current question and returns
// the updated session. An out-of-range option is rejected without mutating
// anything.
func (e *Engine) ToggleOption(userID int64, n int) (*session.Session, error) {
	mu := e.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	s, err := e.load(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Toggle(n); err != nil {
		return nil, err
	}
	if err := e.store.Save(s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Submit grades the current selection and advances the session. When the
// last question is answered the stored session is deleted and the returned
// snapshot is final: build the report from it, there is nothing left to
// load. No transition is committed if the store fails, so retrying the
// same action is safe.
func (e *Engine) Submit(userID int64) (*session.Session, error) {
	mu := e.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	s, err := e.load(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Submit(); err != nil {
		return nil, err
	}

	if s.Finished() {
		if err := e.store.Delete(userID); err != nil {
			return nil, fmt.Errorf("delete session: %w", err)
		}
		e.logger.Info("quiz finished", "user_id", userID, "score", s.Score, "total", len(s.Questions))
		return s, nil
	}

	if err := e.store.Save(s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func (e *Engine) load(userID int64) (*session.Session, error) {
	s, err := e.store.Get(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

// lockFor returns the mutex guarding the user's get-mutate-save cycle.
// Locks are kept for the process lifetime; the map grows with the number
// of distinct users, not with traffic.
func (e *Engine) lockFor(userID int64) *sync.Mutex {
	e.lockMu.Lock()
	defer e.lockMu.Unlock()

	mu, ok := e.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		e.locks[userID] = mu
	}
	return mu
}
