package services

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, sess domain.Session, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, sess domain.Session, filter domain.TransactionFilter) ([]domain.Transaction, error)
	// GetNetIncome is income minus expense inside rng; nil means all time.
	GetNetIncome(ctx context.Context, sess domain.Session, rng *domain.DateRange) (decimal.Decimal, error)
	GetSummary(ctx context.Context, sess domain.Session, rng *domain.DateRange) (*domain.Summary, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, sess domain.Session, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, sess domain.Session, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, sess domain.Session, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// CatalogSvcFacade manages categories and payment modes.
type CatalogSvcFacade interface {
	CreateCategory(ctx context.Context, sess domain.Session, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, sess domain.Session) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, sess domain.Session, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, sess domain.Session, categoryID string) error

	CreatePaymentMode(ctx context.Context, sess domain.Session, req dto.CreatePaymentModeRequest) (*domain.PaymentMode, error)
	ListPaymentModes(ctx context.Context, sess domain.Session) ([]domain.PaymentMode, error)
	DeletePaymentMode(ctx context.Context, sess domain.Session, paymentModeID string) error
}
