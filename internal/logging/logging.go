// Package logging builds the process-wide slog logger. Every component
// derives its own logger from this one via With("component", ...).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a GABBAI_LOG_LEVEL value to a slog level. Unknown or
// empty values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup constructs the text logger on stderr at the given level and
// installs it as the slog default.
func Setup(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}
