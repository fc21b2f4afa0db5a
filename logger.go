package pstr

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithStore adds a store name field to the logger.
func (l *Logger) WithStore(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", name),
	}
}

// LogBlockAllocated logs the installation of a new block.
func (l *Logger) LogBlockAllocated(index uint32, blocks uint64, offHeap bool) {
	l.Debug("block allocated",
		"block", index,
		"blocks", blocks,
		"off_heap", offHeap,
	)
}

// LogAllocationFailure logs a miss that could not obtain block memory.
func (l *Logger) LogAllocationFailure(length int, err error) {
	l.Error("intern failed: block allocation",
		"length", length,
		"error", err,
	)
}

// LogLengthExceeded logs a rejected intern request.
func (l *Logger) LogLengthExceeded(length int) {
	l.Debug("intern rejected: length exceeded",
		"length", length,
		"max", MaxLength,
	)
}
