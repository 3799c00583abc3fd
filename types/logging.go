package types

import (
	"log/slog"
	"strings"
)

const (
	LevelTrace = slog.Level(slog.LevelDebug - 1)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var logLevelMap = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(level string) (slog.Level, bool) {
	l, ok := logLevelMap[strings.ToLower(level)]
	return l, ok
}

// LevelName returns TRACE for LevelTrace and defers to slog otherwise.
func LevelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}
