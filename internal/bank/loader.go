// Package bank loads the question bank from a tabular source.
//
// Each row carries 6 positional fields: the raw answer spec, the question
// text and four option texts. Malformed rows are skipped with a reason
// instead of aborting the whole load, since these spreadsheets commonly
// contain header rows and stray blank lines.
package bank

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/teletest/quizbot/internal/domain/question"
)

// DefaultSeparator joins the two digits of a dual-answer spec ("1 и 3").
// Configurable so that banks in a different locale are not silently dropped.
const DefaultSeparator = "и"

// placeholderOption substitutes a missing option cell.
const placeholderOption = "Нет ответа"

// Options configures the loader.
type Options struct {
	Separator string // dual-answer separator token; DefaultSeparator when empty
}

// RowIssue describes one rejected row.
type RowIssue struct {
	Line   int
	Reason string
}

func (ri RowIssue) String() string {
	return fmt.Sprintf("row %d: %s", ri.Line, ri.Reason)
}

// LoadError is returned when no usable bank could be produced. It carries
// the per-row rejection reasons for diagnosis.
type LoadError struct {
	Accepted int
	Issues   []RowIssue
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("question bank has %d valid questions, want between %d and %d",
		e.Accepted, question.MinQuestions, question.MaxQuestions)
	if len(e.Issues) > 0 {
		reasons := make([]string, len(e.Issues))
		for i, issue := range e.Issues {
			reasons[i] = issue.String()
		}
		msg += "; skipped rows: " + strings.Join(reasons, "; ")
	}
	return msg
}

// Load reads a CSV file and returns the validated bank together with the
// rows that were skipped. The error is non-nil on I/O failure or when the
// accepted question count falls outside the bank bounds.
func Load(path string, opts Options) (*question.Bank, []RowIssue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows are ragged, short rows get placeholders
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read question bank: %w", err)
	}

	return Parse(rows, opts)
}

// Parse validates raw rows into a bank. Rejected rows are collected with
// a reason, never silently dropped.
func Parse(rows [][]string, opts Options) (*question.Bank, []RowIssue, error) {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	var questions []question.Question
	var issues []RowIssue

	for i, row := range rows {
		q, issue := parseRow(i+1, row, sep)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) < question.MinQuestions || len(questions) > question.MaxQuestions {
		return nil, issues, &LoadError{Accepted: len(questions), Issues: issues}
	}

	return &question.Bank{Questions: questions}, issues, nil
}

func parseRow(line int, row []string, sep string) (question.Question, *RowIssue) {
	reject := func(reason string) (question.Question, *RowIssue) {
		return question.Question{}, &RowIssue{Line: line, Reason: reason}
	}

	if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
		return reject("empty answer or question")
	}

	// Normalize the 4 option cells: a cell missing from a short row becomes
	// a placeholder, a present but blank cell rejects the row.
	options := make([]string, question.OptionCount)
	for i := range options {
		cell := ""
		if 2+i < len(row) {
			cell = row[2+i]
		} else {
			cell = placeholderOption
		}
		if strings.TrimSpace(cell) == "" {
			return reject(fmt.Sprintf("option %d is blank", i+1))
		}
		options[i] = cell
	}

	correct, err := parseAnswerSpec(row[0], sep)
	if err != nil {
		return reject(err.Error())
	}

	return question.Question{
		Text:    strings.TrimSpace(row[1]),
		Options: options,
		Correct: correct,
	}, nil
}

// parseAnswerSpec reduces the raw answer field to a small grammar: one
// digit in 1..4, or two such digits joined by the separator token.
// Everything else is rejected.
func parseAnswerSpec(raw, sep string) ([]int, error) {
	// Collapse runs of whitespace so "1  и 3" still parses.
	normalized := strings.Join(strings.Fields(strings.TrimSpace(raw)), " ")

	if n, ok := parseDigit(normalized); ok {
		return []int{n}, nil
	}

	parts := strings.Split(normalized, " "+sep+" ")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid answer spec %q", raw)
	}

	first, ok := parseDigit(strings.TrimSpace(parts[0]))
	if !ok {
		return nil, fmt.Errorf("invalid number in answer spec %q", raw)
	}
	second, ok := parseDigit(strings.TrimSpace(parts[1]))
	if !ok {
		return nil, fmt.Errorf("invalid number in answer spec %q", raw)
	}
	if first == second {
		return nil, fmt.Errorf("duplicate number in answer spec %q", raw)
	}
	if first > second {
		first, second = second, first
	}
	return []int{first, second}, nil
}

func parseDigit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '0'+question.OptionCount {
		return 0, false
	}
	return int(s[0] - '0'), true
}
