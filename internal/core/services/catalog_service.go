package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/google/uuid"
)

type catalogService struct {
	BaseService
	store portsrepo.Store
}

// NewCatalogService creates a service for categories and payment modes.
func NewCatalogService(store portsrepo.Store) portssvc.CatalogSvcFacade {
	return &catalogService{store: store}
}

func (s *catalogService) CreateCategory(ctx context.Context, sess domain.Session, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("category name is required")
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	now := s.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		BusinessID: sess.BusinessID,
		Name:       name,
		Color:      strings.TrimSpace(req.Color),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     sess.Username,
			LastUpdatedAt: now,
			LastUpdatedBy: sess.Username,
		},
	}
	if err := uow.Categories().SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit category creation", slog.String("category_name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *catalogService) ListCategories(ctx context.Context, sess domain.Session) ([]domain.Category, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Categories().ListCategories(ctx, sess.BusinessID)
}

func (s *catalogService) UpdateCategory(ctx context.Context, sess domain.Session, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("category name cannot be empty")
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	category, err := uow.Categories().FindCategoryByID(ctx, sess.BusinessID, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		category.Color = strings.TrimSpace(*req.Color)
	}
	category.LastUpdatedAt = s.Now()
	category.LastUpdatedBy = sess.Username

	if err := uow.Categories().UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, sess domain.Session, categoryID string) error {
	if err := requireBusiness(sess); err != nil {
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	category, err := uow.Categories().FindCategoryByID(ctx, sess.BusinessID, categoryID)
	if err != nil {
		return err
	}
	count, err := uow.Transactions().CountTransactions(ctx, sess.BusinessID, domain.TransactionFilter{CategoryID: categoryID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category '%s' is used by %d transaction(s)", apperrors.ErrConstraintViolation, category.Name, count)
	}
	if err := uow.Categories().DeleteCategory(ctx, sess.BusinessID, categoryID); err != nil {
		return err
	}
	if err := commit(ctx, uow); err != nil {
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

func (s *catalogService) CreatePaymentMode(ctx context.Context, sess domain.Session, req dto.CreatePaymentModeRequest) (*domain.PaymentMode, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("payment mode name is required")
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	now := s.Now()
	mode := domain.PaymentMode{
		PaymentModeID: uuid.NewString(),
		BusinessID:    sess.BusinessID,
		Name:          name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     sess.Username,
			LastUpdatedAt: now,
			LastUpdatedBy: sess.Username,
		},
	}
	if err := uow.PaymentModes().SavePaymentMode(ctx, mode); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment mode created", slog.String("payment_mode_id", mode.PaymentModeID))
	return &mode, nil
}

func (s *catalogService) ListPaymentModes(ctx context.Context, sess domain.Session) ([]domain.PaymentMode, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.PaymentModes().ListPaymentModes(ctx, sess.BusinessID)
}

func (s *catalogService) DeletePaymentMode(ctx context.Context, sess domain.Session, paymentModeID string) error {
	if err := requireBusiness(sess); err != nil {
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	mode, err := uow.PaymentModes().FindPaymentModeByID(ctx, sess.BusinessID, paymentModeID)
	if err != nil {
		return err
	}
	count, err := uow.Transactions().CountTransactions(ctx, sess.BusinessID, domain.TransactionFilter{PaymentModeID: paymentModeID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: payment mode '%s' is used by %d transaction(s)", apperrors.ErrConstraintViolation, mode.Name, count)
	}
	if err := uow.PaymentModes().DeletePaymentMode(ctx, sess.BusinessID, paymentModeID); err != nil {
		return err
	}
	return commit(ctx, uow)
}
