package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelFatal is the level used for the "fatal" log level name.
const LevelFatal = slog.LevelError + 4

// FormatJSON selects JSON log lines.
const FormatJSON = "json"

// Options describes where and how to log.
type Options struct {
	// Level is a level name: debug, info, warn, error or fatal.
	Level string

	// Format is "json" for JSON lines; anything else selects text.
	Format string

	// Location is a file to append log records to. Empty means a standard
	// stream chosen by SuppressStdout.
	Location string

	// SuppressStdout sends logs to Stderr instead of Stdout because a
	// machine-readable report owns standard output.
	SuppressStdout bool

	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// ParseLevel converts a level name to an slog.Level. Unknown names select
// slog.LevelInfo and ok is false.
func ParseLevel(name string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	case "fatal":
		return LevelFatal, true
	default:
		return slog.LevelInfo, false
	}
}

// Destination returns the writer log records go to. The returned close
// function releases an opened log file and is a no-op otherwise.
func Destination(opts Options) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	if opts.Location != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Location), 0750); err != nil {
			return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Location, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // User-provided log path is intentional
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f.Close, nil
	}

	if opts.SuppressStdout {
		if opts.Stderr != nil {
			return opts.Stderr, noop, nil
		}
		return os.Stderr, noop, nil
	}
	if opts.Stdout != nil {
		return opts.Stdout, noop, nil
	}
	return os.Stdout, noop, nil
}

// New builds a secure logger for opts. The caller must call the returned
// close function once logging is finished.
func New(opts Options) (*slog.Logger, func() error, error) {
	w, closeFn, err := Destination(opts)
	if err != nil {
		return nil, closeFn, err
	}
	level, _ := ParseLevel(opts.Level)
	if strings.EqualFold(opts.Format, FormatJSON) {
		return NewSecureJSONLogger(w, level), closeFn, nil
	}
	return NewSecureLogger(w, level), closeFn, nil
}

// NewSecureLogger creates a text logger at level that masks sensitive values.
func NewSecureLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(level))))
}

// NewSecureJSONLogger creates a JSON logger at level that masks sensitive
// values. Useful when logs are collected by a log aggregator.
func NewSecureJSONLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(level))))
}

func handlerOptions(level slog.Leveler) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}
}
