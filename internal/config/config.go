package config

import (
	"fmt"
	"os"
	"strings"

	"timeboxer/internal/clock"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken    string
	DatabaseURL      string
	ReportTime       string // daily plan report, "HH:MM"
	DefaultStartTime string // schedule anchor for users who never set one
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ReportTime:       strings.TrimSpace(os.Getenv("REPORT_TIME")),
		DefaultStartTime: strings.TrimSpace(os.Getenv("DEFAULT_START_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "timeboxer.db"
	}
	if cfg.ReportTime == "" {
		cfg.ReportTime = "08:00"
	}
	if cfg.DefaultStartTime == "" {
		cfg.DefaultStartTime = "09:00"
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if !clock.IsValid(cfg.ReportTime) {
		return cfg, fmt.Errorf("REPORT_TIME must be HH:MM, got %q", cfg.ReportTime)
	}
	if !clock.IsValid(cfg.DefaultStartTime) {
		return cfg, fmt.Errorf("DEFAULT_START_TIME must be HH:MM, got %q", cfg.DefaultStartTime)
	}

	return cfg, nil
}
