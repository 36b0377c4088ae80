// Package telegram adapts Telegram updates to quiz engine actions and
// renders sessions and reports back as messages with inline keyboards.
package telegram

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/teletest/quizbot/internal/domain/session"
	"github.com/teletest/quizbot/internal/engine"
	"github.com/teletest/quizbot/internal/report"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
	logger *slog.Logger
}

func NewBot(token string, eng *engine.Engine, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, engine: eng, logger: logger}, nil
}

// Run polls for updates until Stop is called. Each update is handled in
// its own goroutine; the engine serializes actions per user, so updates
// for different users proceed in parallel while a double tap from one
// user cannot race itself.
func (b *Bot) Run() {
	b.logger.Info("authorized", "account", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for update := range updates {
		go b.handleUpdate(update)
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.startQuiz(msg.Chat.ID, msg.From.ID, true)
	default:
		b.send(msg.Chat.ID, unknownCommandText)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	// Ack first so the client stops its loading spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Error("failed to answer callback", "error", err)
	}

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "select_"):
		n, err := strconv.Atoi(strings.TrimPrefix(data, "select_"))
		if err != nil {
			return
		}
		s, err := b.engine.ToggleOption(userID, n)
		if err != nil {
			b.replyError(chatID, userID, err)
			return
		}
		b.sendQuestion(chatID, s, cb.Message.MessageID)

	case data == "submit":
		s, err := b.engine.Submit(userID)
		if err != nil {
			b.replyError(chatID, userID, err)
			return
		}
		if s.Finished() {
			b.sendReport(chatID, report.Build(s))
			return
		}
		b.sendQuestion(chatID, s, cb.Message.MessageID)

	case data == "restart":
		b.startQuiz(chatID, userID, false)

	default:
		b.send(chatID, unknownCommandText)
	}
}

func (b *Bot) startQuiz(chatID, userID int64, welcome bool) {
	if welcome {
		b.send(chatID, welcomeText)
	}

	s, err := b.engine.Start(userID)
	if err != nil {
		b.logger.Error("failed to start quiz", "user_id", userID, "error", err)
		b.send(chatID, genericErrorText)
		return
	}
	b.sendQuestion(chatID, s, 0)
}

// sendQuestion renders the current question. With editMessageID set the
// first chunk replaces the existing message in place (checkbox updates),
// otherwise a fresh message is sent. Overflow chunks go out as plain
// messages; the keyboard always rides on the first chunk.
func (b *Bot) sendQuestion(chatID int64, s *session.Session, editMessageID int) {
	text := questionMessage(s)
	kb := questionKeyboard(s)

	for i, part := range splitMessage(text, messageLimit) {
		if i > 0 {
			b.send(chatID, part)
			continue
		}
		if editMessageID != 0 {
			edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, editMessageID, part, kb)
			if _, err := b.api.Send(edit); err != nil {
				b.logger.Error("failed to edit question message", "error", err)
			}
			continue
		}
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ReplyMarkup = kb
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("failed to send question", "error", err)
		}
	}
}

func (b *Bot) sendReport(chatID int64, r report.Report) {
	parts := splitMessage(reportMessage(r), messageLimit)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if i == len(parts)-1 {
			msg.ReplyMarkup = restartKeyboard()
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("failed to send report", "error", err)
		}
	}
}

func (b *Bot) replyError(chatID, userID int64, err error) {
	switch {
	case errors.Is(err, engine.ErrNoSession):
		b.send(chatID, sessionExpiredText)
	case errors.Is(err, session.ErrInvalidOption), errors.Is(err, session.ErrFinished):
		// Stale or malformed button tap. Ignore rather than spam the chat.
	default:
		b.logger.Error("quiz action failed", "user_id", userID, "error", err)
		b.send(chatID, genericErrorText)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", "error", err)
	}
}
