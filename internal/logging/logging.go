// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging opens the NeuralPilot diagnostic log.
//
// The TUI owns the terminal, so diagnostics go to a JSON-lines file rather
// than stderr. Components receive a zerolog.Logger value; nothing here sets
// package-level logger state.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Options configures Open.
type Options struct {
	// Path of the log file. Parent directories are created.
	Path string
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// Console additionally mirrors entries to w in human-readable form.
	Console io.Writer
}

// Logger bundles a logger with the file it writes to.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Open creates (or appends to) the log file and returns a logger on it.
func Open(opts Options) (*Logger, error) {
	if opts.Path == "" {
		return nil, errors.New("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", opts.Path)
	}

	var w io.Writer = f
	if opts.Console != nil {
		w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: opts.Console, NoColor: true})
	}

	return &Logger{
		Logger: New(w, opts.Level),
		file:   f,
	}, nil
}

// New returns a timestamped logger on w at the named level.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "neuralpilot").
		Logger()
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

// ParseLevel converts a string level into zerolog.Level with a safe default.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	case "info":
		fallthrough
	default:
		return zerolog.InfoLevel
	}
}
