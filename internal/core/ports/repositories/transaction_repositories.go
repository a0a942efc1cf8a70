package repositories

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns matches newest date first, then newest created first.
	ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	CountTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter) (int, error)
}

// TransactionWriter defines write operations for transactions
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, businessID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// FundTransferRepositoryFacade persists transfers between accounts.
type FundTransferRepositoryFacade interface {
	SaveFundTransfer(ctx context.Context, transfer domain.FundTransfer) error
	// ListFundTransfers returns transfers newest first. A non-empty accountID keeps
	// only transfers touching that account.
	ListFundTransfers(ctx context.Context, businessID, accountID string) ([]domain.FundTransfer, error)
}
