package vecdb

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecdb-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// With returns a Logger that includes the given attributes in each record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return l.With("dimension", dim)
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, id string, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"id", id,
			"dimension", dimension,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "insert completed",
		"id", id,
		"dimension", dimension,
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"k", k,
		"results", resultsFound,
	)
}

// LogGet logs a point lookup. A missing record is a normal outcome and is
// logged at debug level.
func (l *Logger) LogGet(ctx context.Context, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		l.DebugContext(ctx, "get missed", "id", id)
	case err != nil:
		l.ErrorContext(ctx, "get failed",
			"id", id,
			"error", err,
		)
	default:
		l.DebugContext(ctx, "get completed", "id", id)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		l.DebugContext(ctx, "delete missed", "id", id)
	case err != nil:
		l.ErrorContext(ctx, "delete failed",
			"id", id,
			"error", err,
		)
	default:
		l.DebugContext(ctx, "delete completed", "id", id)
	}
}
