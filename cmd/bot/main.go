package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/teletest/quizbot/internal/bank"
	"github.com/teletest/quizbot/internal/engine"
	"github.com/teletest/quizbot/internal/infrastructure/config"
	"github.com/teletest/quizbot/internal/store"
	"github.com/teletest/quizbot/internal/telegram"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	qbank, issues, err := bank.Load(cfg.BankPath, bank.Options{Separator: cfg.AnswerSeparator})
	if err != nil {
		logger.Error("failed to load question bank", "path", cfg.BankPath, "error", err)
		os.Exit(1)
	}
	for _, issue := range issues {
		logger.Warn("skipped question bank row", "row", issue.Line, "reason", issue.Reason)
	}
	logger.Info("question bank loaded", "path", cfg.BankPath, "questions", qbank.Size())

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	eng := engine.New(qbank, db, logger, nil)

	bot, err := telegram.NewBot(cfg.TelegramToken, eng, logger)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// ── Shutdown ────────────────────────────────────────────────────
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down bot")
		bot.Stop()
	}()

	logger.Info("bot started")
	bot.Run()
}
