package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/teletest/quizbot/internal/domain/question"
	"github.com/teletest/quizbot/internal/domain/session"
	"github.com/teletest/quizbot/internal/report"
)

// messageLimit is Telegram's hard cap on message length.
const messageLimit = 4096

const welcomeText = "Добро пожаловать в тест-бот! 📝\n" +
	"Вы получите 10 вопросов с 4 вариантами ответов. " +
	"Выберите один или несколько вариантов, затем нажмите '📥 Ответить'.\n" +
	"Для успешного прохождения необходимо правильно ответить на >=80% вопросов.\n" +
	"В конце можно ознакомиться с результатами и разобрать ошибки."

const (
	sessionExpiredText = "Сессия истекла. Нажмите /start."
	genericErrorText   = "Произошла ошибка. Попробуйте снова."
	unknownCommandText = "Неизвестная команда. Нажмите /start."
)

func questionMessage(s *session.Session) string {
	q, ok := s.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Вопрос %d/%d\n\n%s\n\n", s.Current+1, len(s.Questions), q.Text)
	for i, option := range q.Options {
		checkbox := "⬜️"
		if s.IsSelected(i + 1) {
			checkbox = "✅"
		}
		fmt.Fprintf(&b, "%s Вариант %d: %s\n", checkbox, i+1, option)
		if i < len(q.Options)-1 {
			b.WriteString(strings.Repeat("-", 50) + "\n")
		}
	}
	return b.String()
}

func questionKeyboard(s *session.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 1; i <= question.OptionCount; i++ {
		checkbox := "⬜️"
		if s.IsSelected(i) {
			checkbox = "☑️"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s Вариант %d", checkbox, i),
				fmt.Sprintf("select_%d", i),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📥 Ответить", "submit"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func restartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Начать заново", "restart"),
		),
	)
}

func reportMessage(r report.Report) string {
	verdict := "❌ Тест не сдан."
	if r.Passed {
		verdict = "✅ Тест сдан!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Тест завершен!\nПравильных ответов: %d/%d\nРезультат: %s\n\n", r.Score, r.Total, verdict)

	if len(r.Missed) == 0 {
		b.WriteString("Все ответы правильные! 🎉\n")
		return b.String()
	}

	b.WriteString("Неправильные ответы:\n\n")
	for _, m := range r.Missed {
		fmt.Fprintf(&b, "❓ Вопрос: %s\n✅ Правильные ответы: %s\n%s\n",
			m.Question, strings.Join(m.CorrectOptions, ", "), strings.Repeat("-", 50))
	}
	return b.String()
}

// splitMessage breaks text into chunks of at most limit characters,
// preferring line boundaries. A single line longer than the limit is
// hard-split rather than dropped.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for len(line) >= limit {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			parts = append(parts, line[:limit])
			line = line[limit:]
		}
		if current.Len()+len(line)+1 > limit {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
