// Package debug provides debug logging using log/slog.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	// Discard by default; Init(true) switches to stderr. Parsing and
	// execution paths log unconditionally, so the zero state must be safe.
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init configures the global debug logger. When enable is true debug logs
// are written to stderr; otherwise they are discarded.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if enable {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Error(msg, args...)
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With(args...)
}
