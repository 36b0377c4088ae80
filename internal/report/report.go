package report

import (
	"github.com/teletest/quizbot/internal/domain/session"
)

// PassThreshold is the share of correct answers required to pass.
const PassThreshold = 0.80

// Missed is one incorrectly answered question with its correct answers.
type Missed struct {
	Question       string
	CorrectOptions []string
}

// Report is the final verdict for a completed session.
type Report struct {
	Score  int
	Total  int
	Passed bool
	Missed []Missed // in question order
}

// Build derives the report from a completed session snapshot. Pure
// function, no side effects.
func Build(s *session.Session) Report {
	r := Report{
		Score:  s.Score,
		Total:  len(s.Questions),
		Passed: float64(s.Score)/float64(len(s.Questions)) >= PassThreshold,
	}

	for i, submitted := range s.History {
		q := s.Questions[i]
		if equalSets(submitted, q.Correct) {
			continue
		}
		r.Missed = append(r.Missed, Missed{
			Question:       q.Text,
			CorrectOptions: q.CorrectOptionTexts(),
		})
	}

	return r
}

func equalSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			return false
		}
	}
	return true
}
