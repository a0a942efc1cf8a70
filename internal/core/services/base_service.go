package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock, at storage precision.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC().Truncate(time.Microsecond)
	}
	return domain.Now()
}

// requireBusiness rejects sessions that carry no business context.
func requireBusiness(sess domain.Session) error {
	if !sess.HasBusiness() {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrNoActiveBusiness)
	}
	return nil
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

// commit wraps a failed commit so callers can match ErrStore.
func commit(ctx context.Context, uow portsrepo.UnitOfWork) error {
	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, apperrors.ErrStore) {
			return err
		}
		return apperrors.NewStoreError("failed to commit transaction", err)
	}
	return nil
}

// recordActivity appends an activity entry inside the caller's unit of work.
func recordActivity(ctx context.Context, uow portsrepo.UnitOfWork, businessID, action, details string, now time.Time) error {
	entry := domain.ActivityLog{
		ActivityLogID: uuid.NewString(),
		BusinessID:    businessID,
		Action:        action,
		Details:       details,
		Timestamp:     now,
	}
	if err := uow.ActivityLogs().SaveActivityLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to record activity %q: %w", action, err)
	}
	return nil
}
