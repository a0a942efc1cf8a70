package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// UserReader defines read operations for users
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// UserWriter defines write operations for users
type UserWriter interface {
	// SaveUser returns apperrors.ErrDuplicate when the username is taken.
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// ActivityCursor marks the last entry of a page; the next page starts strictly after it.
type ActivityCursor struct {
	Timestamp     time.Time
	ActivityLogID string
}

// ActivityLogRepositoryFacade appends and pages through activity entries.
type ActivityLogRepositoryFacade interface {
	SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error
	// ListActivityLogs returns up to limit entries newest first, after the cursor when given.
	ListActivityLogs(ctx context.Context, businessID string, limit int, after *ActivityCursor) ([]domain.ActivityLog, error)
}
