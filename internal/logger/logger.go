// Package logger: single place to initialize and fetch the process logger;
// level and format come from the environment so every binary behaves the same.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Shared default logger, reused process-wide to keep output consistent.
var defaultLogger *slog.Logger

// Setup initializes the default logger.
// Constraints: output goes to stderr; no file handles or aggregation channels
// are managed here.
func Setup() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	defaultLogger = slog.New(h)
	return defaultLogger
}

// L returns the default logger, falling back to Setup when uninitialized.
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup()
	}
	return defaultLogger
}
