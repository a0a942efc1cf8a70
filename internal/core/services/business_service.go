package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/google/uuid"
)

type businessService struct {
	BaseService
	store portsrepo.Store
}

// NewBusinessService creates a service that manages businesses and the active flag.
func NewBusinessService(store portsrepo.Store) portssvc.BusinessSvcFacade {
	return &businessService{store: store}
}

func (s *businessService) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Businesses().ListBusinesses(ctx)
}

func (s *businessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Businesses().FindBusinessByID(ctx, businessID)
}

func (s *businessService) GetActiveBusiness(ctx context.Context) (*domain.Business, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	business, err := uow.Businesses().FindActiveBusiness(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoActiveBusiness
		}
		return nil, err
	}
	return business, nil
}

// CreateBusiness seeds the default categories and payment modes. The first
// business ever created becomes the active one.
func (s *businessService) CreateBusiness(ctx context.Context, sess domain.Session, req dto.CreateBusinessRequest) (*domain.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("business name is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if _, ok := domain.FindCurrency(currency); !ok {
		return nil, validationError("unsupported currency %q", req.CurrencyCode)
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	existing, err := uow.Businesses().ListBusinesses(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	business := domain.Business{
		BusinessID:   uuid.NewString(),
		Name:         name,
		Address:      strings.TrimSpace(req.Address),
		CurrencyCode: currency,
		IsActive:     len(existing) == 0,
		AuditFields:  newAudit(sess.Username, now),
	}
	if err := uow.Businesses().SaveBusiness(ctx, business); err != nil {
		s.LogError(ctx, err, "Failed to save business", slog.String("business_name", name))
		return nil, err
	}
	if err := seedCatalog(ctx, uow, business.BusinessID, sess.Username, now); err != nil {
		s.LogError(ctx, err, "Failed to seed business catalog", slog.String("business_id", business.BusinessID))
		return nil, err
	}
	if err := recordActivity(ctx, uow, business.BusinessID, domain.ActionBusinessCreated,
		fmt.Sprintf("Business '%s' created", name), now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit business creation", slog.String("business_id", business.BusinessID))
		return nil, err
	}

	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID), slog.Bool("active", business.IsActive))
	return &business, nil
}

func newAudit(username string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     username,
		LastUpdatedAt: now,
		LastUpdatedBy: username,
	}
}

func seedCatalog(ctx context.Context, uow portsrepo.UnitOfWork, businessID, username string, now time.Time) error {
	for _, name := range domain.DefaultCategoryNames {
		category := domain.Category{
			CategoryID:  uuid.NewString(),
			BusinessID:  businessID,
			Name:        name,
			AuditFields: newAudit(username, now),
		}
		if err := uow.Categories().SaveCategory(ctx, category); err != nil {
			return err
		}
	}
	for _, name := range domain.DefaultPaymentModeNames {
		mode := domain.PaymentMode{
			PaymentModeID: uuid.NewString(),
			BusinessID:    businessID,
			Name:          name,
			AuditFields:   newAudit(username, now),
		}
		if err := uow.PaymentModes().SavePaymentMode(ctx, mode); err != nil {
			return err
		}
	}
	return nil
}

func (s *businessService) SetActiveBusiness(ctx context.Context, sess domain.Session, businessID string) (*domain.Business, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	business, err := uow.Businesses().FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if err := uow.Businesses().SetActiveBusiness(ctx, businessID, now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}

	business.IsActive = true
	s.LogInfo(ctx, "Active business switched", slog.String("business_id", businessID), slog.String("user", sess.Username))
	return business, nil
}

func (s *businessService) UpdateBusiness(ctx context.Context, sess domain.Session, businessID string, req dto.UpdateBusinessRequest) (*domain.Business, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("business name cannot be empty")
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	business, err := uow.Businesses().FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		business.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		business.Address = strings.TrimSpace(*req.Address)
	}
	if req.CurrencyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
		if _, ok := domain.FindCurrency(code); !ok {
			return nil, validationError("unsupported currency %q", *req.CurrencyCode)
		}
		business.CurrencyCode = code
	}
	now := s.Now()
	business.LastUpdatedAt = now
	business.LastUpdatedBy = sess.Username

	if err := uow.Businesses().UpdateBusiness(ctx, *business); err != nil {
		return nil, err
	}
	if err := recordActivity(ctx, uow, businessID, domain.ActionBusinessUpdated,
		fmt.Sprintf("Business '%s' updated", business.Name), now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}
	return business, nil
}

// DeleteBusiness removes the business and everything it owns. Deleting the
// active business hands the flag to the oldest remaining one.
func (s *businessService) DeleteBusiness(ctx context.Context, sess domain.Session, businessID string) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	business, err := uow.Businesses().FindBusinessByID(ctx, businessID)
	if err != nil {
		return err
	}
	if err := uow.Businesses().DeleteBusiness(ctx, businessID); err != nil {
		s.LogError(ctx, err, "Failed to delete business", slog.String("business_id", businessID))
		return err
	}

	if business.IsActive {
		remaining, err := uow.Businesses().ListBusinesses(ctx)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := uow.Businesses().SetActiveBusiness(ctx, remaining[0].BusinessID, s.Now()); err != nil {
				return err
			}
		}
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit business deletion", slog.String("business_id", businessID))
		return err
	}

	s.LogInfo(ctx, "Business deleted", slog.String("business_id", businessID), slog.String("user", sess.Username))
	return nil
}
