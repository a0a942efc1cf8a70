package services

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
)

// BusinessReaderSvc defines read operations for businesses
type BusinessReaderSvc interface {
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
	GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	// GetActiveBusiness returns apperrors.ErrNoActiveBusiness when none is flagged.
	GetActiveBusiness(ctx context.Context) (*domain.Business, error)
}

// BusinessWriterSvc defines write operations for businesses
type BusinessWriterSvc interface {
	CreateBusiness(ctx context.Context, sess domain.Session, req dto.CreateBusinessRequest) (*domain.Business, error)
	SetActiveBusiness(ctx context.Context, sess domain.Session, businessID string) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, sess domain.Session, businessID string, req dto.UpdateBusinessRequest) (*domain.Business, error)
	DeleteBusiness(ctx context.Context, sess domain.Session, businessID string) error
}

// BusinessSvcFacade combines all business-related service interfaces
type BusinessSvcFacade interface {
	BusinessReaderSvc
	BusinessWriterSvc
}
