// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable read by Configure.
const EnvLevel = "FORGE_LOG_LEVEL"

var logLevel = new(slog.LevelVar)

// Configure installs a text handler writing to w as the default logger.
// The level comes from level when set, else from FORGE_LOG_LEVEL, else Info.
func Configure(w io.Writer, level string) *slog.Logger {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	SetLevel(ParseLevel(level))

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the level of the logger installed by Configure.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// ParseLevel maps DEBUG, WARN and ERROR to their slog levels; anything else
// is Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
