// internal/store/sqlite.go
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/teletest/quizbot/internal/domain/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    user_id INTEGER PRIMARY KEY,
    questions TEXT NOT NULL,
    current_question INTEGER NOT NULL,
    score INTEGER NOT NULL,
    selected_answers TEXT NOT NULL,
    answer_history TEXT NOT NULL
);
`

// SQLiteStore is the durable SessionStore backing. Sessions survive a
// process restart, which is what lets each user interaction arrive as an
// independent, stateless call.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(userID int64) (*session.Session, error) {
	var (
		sess          session.Session
		questionsJSON string
		selectedJSON  string
		historyJSON   string
	)

	err := s.db.QueryRow(
		"SELECT user_id, questions, current_question, score, selected_answers, answer_history FROM sessions WHERE user_id = ?",
		userID,
	).Scan(&sess.UserID, &questionsJSON, &sess.Current, &sess.Score, &selectedJSON, &historyJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(questionsJSON), &sess.Questions); err != nil {
		return nil, fmt.Errorf("corrupt questions for user %d: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(selectedJSON), &sess.Selected); err != nil {
		return nil, fmt.Errorf("corrupt selected answers for user %d: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &sess.History); err != nil {
		return nil, fmt.Errorf("corrupt answer history for user %d: %w", userID, err)
	}

	return &sess, nil
}

func (s *SQLiteStore) Save(sess *session.Session) error {
	questionsJSON, err := json.Marshal(sess.Questions)
	if err != nil {
		return err
	}
	selectedJSON, err := json.Marshal(sess.Selected)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(sess.History)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO sessions (user_id, questions, current_question, score, selected_answers, answer_history)
         VALUES (?, ?, ?, ?, ?, ?)`,
		sess.UserID, string(questionsJSON), sess.Current, sess.Score,
		string(selectedJSON), string(historyJSON),
	)
	return err
}

func (s *SQLiteStore) Delete(userID int64) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	return err
}
