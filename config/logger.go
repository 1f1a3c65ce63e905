package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the application logger. Production emits JSON lines for log
// aggregation; everywhere else emits text for readability. The level defaults
// to debug in development and info otherwise; LOG_LEVEL overrides it.
func NewLogger() *slog.Logger {
	env := os.Getenv("GO_ENV")

	level := slog.LevelInfo
	if env == "" || env == "development" {
		level = slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
