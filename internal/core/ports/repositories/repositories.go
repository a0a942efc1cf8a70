package repositories

import "context"

// Store opens units of work. Each engine operation runs in exactly one.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork is one atomic scope over every repository.
// Rollback after a successful Commit is a no-op, so callers may always defer it.
type UnitOfWork interface {
	Businesses() BusinessRepositoryFacade
	Accounts() AccountRepositoryFacade
	Categories() CategoryRepositoryFacade
	PaymentModes() PaymentModeRepositoryFacade
	Transactions() TransactionRepositoryFacade
	FundTransfers() FundTransferRepositoryFacade
	Employees() EmployeeRepositoryFacade
	Parts() PartRepositoryFacade
	Users() UserRepositoryFacade
	ActivityLogs() ActivityLogRepositoryFacade

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
