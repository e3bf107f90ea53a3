// Package logging sets up the process logger. The TUI owns the terminal, so
// log records go to a file rather than stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Discard is the log path that disables logging.
const Discard = "-"

// Setup opens path for appending and installs a text slog handler writing to
// it as the default logger. The returned closer must be called on exit.
func Setup(path string, debug bool) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" || path == Discard {
		logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	// SetDefault also routes the standard library logger through this handler.
	slog.SetDefault(logger)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
