package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	BankPath      string
	DBPath        string

	// AnswerSeparator joins the two digits of a dual-answer spec in the
	// bank file, e.g. "и" for "1 и 3".
	AnswerSeparator string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		TelegramToken:   mustGetenv("TELEGRAM_TOKEN"),
		BankPath:        getenvDefault("BANK_PATH", "questions.csv"),
		DBPath:          getenvDefault("DB_PATH", "quiz.db"),
		AnswerSeparator: getenvDefault("ANSWER_SEPARATOR", "и"),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
