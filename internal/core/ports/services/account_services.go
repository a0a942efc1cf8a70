package services

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, sess domain.Session, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, sess domain.Session) ([]domain.Account, error)
	// GetTotalBalance sums the running balance of every account of the business.
	GetTotalBalance(ctx context.Context, sess domain.Session) (decimal.Decimal, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, sess domain.Session, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, sess domain.Session, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	// DeleteAccount fails with apperrors.ErrConstraintViolation while transactions reference the account.
	DeleteAccount(ctx context.Context, sess domain.Session, accountID string) error
}

// TransferSvc moves money between accounts.
type TransferSvc interface {
	TransferFunds(ctx context.Context, sess domain.Session, req dto.TransferFundsRequest) (*domain.FundTransfer, error)
	ListFundTransfers(ctx context.Context, sess domain.Session, accountID string) ([]domain.FundTransfer, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	TransferSvc
}
