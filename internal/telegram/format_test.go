package telegram

import (
	"strings"
	"testing"

	"github.com/teletest/quizbot/internal/domain/question"
	"github.com/teletest/quizbot/internal/domain/session"
	"github.com/teletest/quizbot/internal/report"
)

func testSession() *session.Session {
	return &session.Session{
		UserID: 7,
		Questions: []question.Question{
			{
				Text:    "Какой порт у HTTPS?",
				Options: []string{"80", "443", "8080", "22"},
				Correct: []int{2},
			},
			{
				Text:    "Second question",
				Options: []string{"A", "B", "C", "D"},
				Correct: []int{1},
			},
		},
	}
}

func TestQuestionMessage_RendersSelectionState(t *testing.T) {
	s := testSession()
	s.Toggle(2)
	s.Toggle(4)

	msg := questionMessage(s)

	if !strings.Contains(msg, "Вопрос 1/2") {
		t.Errorf("expected progress header, got:\n%s", msg)
	}
	if !strings.Contains(msg, "Какой порт у HTTPS?") {
		t.Errorf("expected question text, got:\n%s", msg)
	}
	if !strings.Contains(msg, "✅ Вариант 2: 443") {
		t.Errorf("expected option 2 checked, got:\n%s", msg)
	}
	if !strings.Contains(msg, "⬜️ Вариант 1: 80") {
		t.Errorf("expected option 1 unchecked, got:\n%s", msg)
	}
	if !strings.Contains(msg, "✅ Вариант 4: 22") {
		t.Errorf("expected option 4 checked, got:\n%s", msg)
	}
}

func TestQuestionKeyboard_ChecksSelectedButtons(t *testing.T) {
	s := testSession()
	s.Toggle(3)

	kb := questionKeyboard(s)

	if len(kb.InlineKeyboard) != question.OptionCount+1 {
		t.Fatalf("expected %d rows, got %d", question.OptionCount+1, len(kb.InlineKeyboard))
	}

	checked := kb.InlineKeyboard[2][0]
	if !strings.HasPrefix(checked.Text, "☑️") {
		t.Errorf("expected option 3 button checked, got %q", checked.Text)
	}
	if *checked.CallbackData != "select_3" {
		t.Errorf("expected callback select_3, got %q", *checked.CallbackData)
	}

	unchecked := kb.InlineKeyboard[0][0]
	if !strings.HasPrefix(unchecked.Text, "⬜️") {
		t.Errorf("expected option 1 button unchecked, got %q", unchecked.Text)
	}

	submit := kb.InlineKeyboard[question.OptionCount][0]
	if *submit.CallbackData != "submit" {
		t.Errorf("expected submit button last, got %q", *submit.CallbackData)
	}
}

func TestReportMessage_Verdicts(t *testing.T) {
	passed := reportMessage(report.Report{Score: 10, Total: 10, Passed: true})
	if !strings.Contains(passed, "✅ Тест сдан!") {
		t.Errorf("expected pass verdict, got:\n%s", passed)
	}
	if !strings.Contains(passed, "Правильных ответов: 10/10") {
		t.Errorf("expected score line, got:\n%s", passed)
	}
	if !strings.Contains(passed, "Все ответы правильные") {
		t.Errorf("expected congratulation for empty missed list, got:\n%s", passed)
	}

	failed := reportMessage(report.Report{
		Score:  3,
		Total:  10,
		Passed: false,
		Missed: []report.Missed{
			{Question: "Q1", CorrectOptions: []string{"A", "C"}},
		},
	})
	if !strings.Contains(failed, "❌ Тест не сдан.") {
		t.Errorf("expected fail verdict, got:\n%s", failed)
	}
	if !strings.Contains(failed, "❓ Вопрос: Q1") {
		t.Errorf("expected missed question, got:\n%s", failed)
	}
	if !strings.Contains(failed, "✅ Правильные ответы: A, C") {
		t.Errorf("expected correct options, got:\n%s", failed)
	}
}

func TestSplitMessage_ShortTextUnchanged(t *testing.T) {
	parts := splitMessage("hello\nworld", messageLimit)
	if len(parts) != 1 || parts[0] != "hello\nworld" {
		t.Errorf("expected single unchanged part, got %q", parts)
	}
}

func TestSplitMessage_SplitsOnLineBoundaries(t *testing.T) {
	line := strings.Repeat("x", 30)
	text := strings.TrimSuffix(strings.Repeat(line+"\n", 10), "\n")

	parts := splitMessage(text, 100)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}

	for i, part := range parts {
		if len(part) > 100 {
			t.Errorf("part %d exceeds limit: %d chars", i, len(part))
		}
		for _, l := range strings.Split(strings.TrimSuffix(part, "\n"), "\n") {
			if l != line {
				t.Errorf("part %d broke a line: %q", i, l)
			}
		}
	}
}

func TestSplitMessage_HardSplitsOversizedLine(t *testing.T) {
	text := strings.Repeat("y", 250)

	parts := splitMessage(text, 100)
	if len(parts) < 3 {
		t.Fatalf("expected at least 3 parts, got %d", len(parts))
	}

	var total int
	for i, part := range parts {
		if len(part) > 100 {
			t.Errorf("part %d exceeds limit: %d chars", i, len(part))
		}
		total += len(strings.TrimSuffix(part, "\n"))
	}
	if total != 250 {
		t.Errorf("expected 250 characters preserved, got %d", total)
	}
}
