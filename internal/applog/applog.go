// Package applog sets up structured logging for the CLI: always to a
// file, never to stderr, since a CLI whose stdout or stderr is piped into
// another tool can't share that stream with verbose diagnostics.
package applog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens (or creates) the log file at path, installs a slog.Logger
// writing text-formatted records to it at level, and sets it as the
// package-default logger. verbose raises the level to Debug. On failure
// to open the log file, logging falls back to io.Discard rather than
// failing the run — a CLI's search must not fail because its log
// sink is unwritable.
func Setup(path string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var writer io.Writer = io.Discard
	closeFn := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				writer = f
				closeFn = func() { _ = f.Close() }
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// DefaultPath returns the log file path under the user's config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ccsearch", "debug.log")
}
