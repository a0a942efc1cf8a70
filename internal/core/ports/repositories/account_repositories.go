package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of a business.
	FindAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error)

	// FindAccountByName matches the name exactly within the business.
	FindAccountByName(ctx context.Context, businessID, name string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts. Unknown IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, businessID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts of a business ordered by name.
	ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	// LockAccountsByIDs is FindAccountsByIDs holding the rows until the unit of
	// work ends, so balance checks stay valid until the update.
	LockAccountsByIDs(ctx context.Context, businessID string, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccount persists name, currency and opening balance. The running
	// balance only moves through ApplyBalanceChanges.
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, businessID, accountID string) error
}

// AccountBalanceSupport moves running balances by deltas.
type AccountBalanceSupport interface {
	// ApplyBalanceChanges adds each delta to the matching account's current balance.
	ApplyBalanceChanges(ctx context.Context, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}
