package services

import (
	"time"

	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
)

// ledgerService keeps running balances consistent with transactions and transfers.
// Every mutation is one unit of work: validate, mutate, record activity, commit.
type ledgerService struct {
	BaseService
	store      portsrepo.Store
	authorizer portssvc.TransactionAuthorizerSvc
}

// LedgerOption configures optional ledger dependencies.
type LedgerOption func(*ledgerService)

// WithTransactionAuthorizer enables the edit window checks on update and delete.
func WithTransactionAuthorizer(authorizer portssvc.TransactionAuthorizerSvc) LedgerOption {
	return func(s *ledgerService) {
		s.authorizer = authorizer
	}
}

// WithLedgerClock overrides the clock used for timestamps and edit windows.
func WithLedgerClock(clock func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.Clock = clock
	}
}

// NewLedgerService creates the ledger engine. The returned value implements
// both AccountSvcFacade and TransactionSvcFacade.
func NewLedgerService(store portsrepo.Store, opts ...LedgerOption) *ledgerService {
	s := &ledgerService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ portssvc.AccountSvcFacade     = (*ledgerService)(nil)
	_ portssvc.TransactionSvcFacade = (*ledgerService)(nil)
)
