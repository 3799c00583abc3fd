package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/scitags/nlmon-go/types"
)

func logReplacements(groups []string, a slog.Attr) slog.Attr {
	// Remove time.
	if a.Key == slog.TimeKey && len(groups) == 0 && !logTimeFlag {
		return slog.Attr{}
	}

	// Remove the directory from the source's filename.
	if a.Key == slog.SourceKey {
		source, ok := a.Value.Any().(*slog.Source)
		if ok {
			source.File = filepath.Base(source.File)
		}
	}

	// Give our custom level a proper name instead of DEBUG-1.
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if level, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, types.LevelName(level))
		}
	}

	return a
}

func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	l, ok := types.ParseLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{
		AddSource:   l < slog.LevelInfo,
		Level:       l,
		ReplaceAttr: logReplacements,
	}

	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
