// Package logger holds the process-wide structured logger. It discards all
// output until Init is called.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger instance. It's initialized to discard all output by default.
var L = slog.New(slog.DiscardHandler)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Output  io.Writer  // Destination. Default: os.Stderr
	File    string     // Append to this file instead of Output when set
	JSON    bool       // Emit JSON records instead of text
	Level   slog.Level // Minimum log level
}

// Init configures logging. It returns a function that closes any file opened
// for the logger; the function is always non-nil.
func Init(opts Options) (func() error, error) {
	noop := func() error { return nil }
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return noop, nil
	}

	out := opts.Output
	closer := noop
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return noop, fmt.Errorf("logger: open %s: %w", opts.File, err)
		}
		out, closer = f, f.Close
	}
	if out == nil {
		out = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(out, hopts))
	} else {
		L = slog.New(slog.NewTextHandler(out, hopts))
	}
	return closer, nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// The empty string and "off" report enabled=false.
func ParseLevel(s string) (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
