package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// BusinessReader defines read operations for businesses
type BusinessReader interface {
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	// FindActiveBusiness returns apperrors.ErrNotFound when no business is flagged active.
	FindActiveBusiness(ctx context.Context) (*domain.Business, error)
	// ListBusinesses returns every business, oldest first.
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
}

// BusinessWriter defines write operations for businesses
type BusinessWriter interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	UpdateBusiness(ctx context.Context, business domain.Business) error
	// SetActiveBusiness flags businessID active and clears the flag everywhere else.
	SetActiveBusiness(ctx context.Context, businessID string, now time.Time) error
	// DeleteBusiness removes the business and every record it owns.
	DeleteBusiness(ctx context.Context, businessID string) error
}

// BusinessRepositoryFacade combines all business-related repository interfaces
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
}
