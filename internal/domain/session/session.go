package session

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/teletest/quizbot/internal/domain/question"
)

// QuestionsPerQuiz is the number of questions sampled into every session.
const QuestionsPerQuiz = 10

var (
	// ErrNotEnoughQuestions is returned when the pool cannot cover a full draw.
	ErrNotEnoughQuestions = errors.New("not enough questions to start a session")

	// ErrInvalidOption is returned for an option number outside 1..4.
	ErrInvalidOption = errors.New("option number out of range")

	// ErrFinished is returned for a transition on an already finished session.
	ErrFinished = errors.New("session already finished")
)

// Session is one user's frozen question draw plus progress state.
// The questions are a snapshot taken at start time, so a later bank
// reload cannot affect a quiz in flight.
type Session struct {
	UserID    int64               `json:"user_id"`
	Questions []question.Question `json:"questions"`
	Current   int                 `json:"current_question"`
	Score     int                 `json:"score"`
	Selected  []int               `json:"selected_answers"`
	History   [][]int             `json:"answer_history"` // one submitted set per answered question
}

// New starts a fresh session for userID by sampling QuestionsPerQuiz
// questions from pool without replacement. The caller owns r and must
// not share it concurrently.
func New(userID int64, pool []question.Question, r *rand.Rand) (*Session, error) {
	if len(pool) < QuestionsPerQuiz {
		return nil, ErrNotEnoughQuestions
	}

	sampled := make([]question.Question, len(pool))
	copy(sampled, pool)
	r.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})

	return &Session{
		UserID:    userID,
		Questions: sampled[:QuestionsPerQuiz:QuestionsPerQuiz],
	}, nil
}

// Finished reports whether every question has been answered.
func (s *Session) Finished() bool {
	return s.Current >= len(s.Questions)
}

// CurrentQuestion returns the question at the current position.
// The second return value is false once the session is finished.
func (s *Session) CurrentQuestion() (question.Question, bool) {
	if s.Finished() {
		return question.Question{}, false
	}
	return s.Questions[s.Current], true
}

// IsSelected reports whether option n is currently toggled on.
func (s *Session) IsSelected(n int) bool {
	for _, v := range s.Selected {
		if v == n {
			return true
		}
	}
	return false
}

// Toggle adds option n to the current selection, or removes it if already
// present. Toggling is its own inverse, so a duplicate delivery of the
// same tap cancels out instead of corrupting the selection.
func (s *Session) Toggle(n int) error {
	if n < 1 || n > question.OptionCount {
		return ErrInvalidOption
	}
	if s.Finished() {
		return ErrFinished
	}

	for i, v := range s.Selected {
		if v == n {
			s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
			return nil
		}
	}
	s.Selected = append(s.Selected, n)
	sort.Ints(s.Selected)
	return nil
}

// Submit grades the current selection against the current question with
// exact set equality (no partial credit), records it in the history,
// clears the selection and advances to the next question. Submitting an
// empty selection is legal and counts as a wrong answer.
func (s *Session) Submit() (bool, error) {
	if s.Finished() {
		return false, ErrFinished
	}

	submitted := append([]int(nil), s.Selected...)
	correct := equalSets(submitted, s.Questions[s.Current].Correct)
	if correct {
		s.Score++
	}
	s.History = append(s.History, submitted)
	s.Selected = nil
	s.Current++
	return correct, nil
}

// Clone returns a deep copy of the mutable session state. Question values
// themselves are immutable and may be shared.
func (s *Session) Clone() *Session {
	c := *s
	c.Questions = append([]question.Question(nil), s.Questions...)
	c.Selected = append([]int(nil), s.Selected...)
	c.History = make([][]int, len(s.History))
	for i, h := range s.History {
		c.History[i] = append([]int(nil), h...)
	}
	return &c
}

func equalSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
