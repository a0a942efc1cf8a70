package repositories

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// CategoryRepositoryFacade persists transaction categories.
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, businessID, categoryID string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, businessID, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, businessID string) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, businessID, categoryID string) error
}

// PaymentModeRepositoryFacade persists payment modes.
type PaymentModeRepositoryFacade interface {
	FindPaymentModeByID(ctx context.Context, businessID, paymentModeID string) (*domain.PaymentMode, error)
	FindPaymentModeByName(ctx context.Context, businessID, name string) (*domain.PaymentMode, error)
	ListPaymentModes(ctx context.Context, businessID string) ([]domain.PaymentMode, error)
	SavePaymentMode(ctx context.Context, paymentMode domain.PaymentMode) error
	DeletePaymentMode(ctx context.Context, businessID, paymentModeID string) error
}
