package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	sessionCtxKey = contextKey("session")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when none was stored.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetSessionFromCtx retrieves the caller session built by AuthMiddleware and SessionMiddleware.
func GetSessionFromCtx(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey).(domain.Session)
	return sess, ok
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, sess)
}
