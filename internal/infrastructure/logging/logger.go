package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/mkarlis/posledger/internal/domain"
)

// Logger wraps slog.Logger with request-scoped field extraction.
type Logger struct {
	*slog.Logger
}

// New creates a new structured logger.
func New(level slog.Level, format string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger carrying the request id and acting identity
// found on ctx. Background workers without either get the base logger.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.Logger

	if meta, ok := domain.RequestMetaFromContext(ctx); ok && meta.RequestID != "" {
		logger = logger.With("request_id", meta.RequestID)
	}

	if actor, ok := domain.ActorFromContext(ctx); ok {
		logger = logger.With("tenant_id", actor.TenantID, "actor_id", actor.ID)
	}

	return logger
}

// InfoCtx logs an info message with context fields.
func (l *Logger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Info(msg, args...)
}

// ErrorCtx logs an error message with context fields.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, args...)
}

// WarnCtx logs a warning message with context fields.
func (l *Logger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Warn(msg, args...)
}

// DebugCtx logs a debug message with context fields.
func (l *Logger) DebugCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Debug(msg, args...)
}

// ParseLevel parses a log level string.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
