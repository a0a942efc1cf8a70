// Package memory is a process-local Store used for development mode and engine tests.
// Units of work are serialised: Begin takes the store lock and Commit or Rollback releases it.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
)

type row[T any] struct {
	seq int64
	val T
}

// table keeps insertion order so listings are stable when sort keys tie.
type table[T any] map[string]row[T]

func (t table[T]) clone() table[T] {
	out := make(table[T], len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func (t table[T]) get(id string) (T, bool) {
	r, ok := t[id]
	return r.val, ok
}

func (t table[T]) values(keep func(T) bool) []T {
	rows := make([]row[T], 0, len(t))
	for _, r := range t {
		if keep == nil || keep(r.val) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.val
	}
	return out
}

type data struct {
	seq          int64
	businesses   table[domain.Business]
	accounts     table[domain.Account]
	categories   table[domain.Category]
	paymentModes table[domain.PaymentMode]
	transactions table[domain.Transaction]
	transfers    table[domain.FundTransfer]
	employees    table[domain.Employee]
	parts        table[domain.Part]
	users        table[domain.User]
	activity     table[domain.ActivityLog]
}

func newData() *data {
	return &data{
		businesses:   table[domain.Business]{},
		accounts:     table[domain.Account]{},
		categories:   table[domain.Category]{},
		paymentModes: table[domain.PaymentMode]{},
		transactions: table[domain.Transaction]{},
		transfers:    table[domain.FundTransfer]{},
		employees:    table[domain.Employee]{},
		parts:        table[domain.Part]{},
		users:        table[domain.User]{},
		activity:     table[domain.ActivityLog]{},
	}
}

func (d *data) clone() *data {
	return &data{
		seq:          d.seq,
		businesses:   d.businesses.clone(),
		accounts:     d.accounts.clone(),
		categories:   d.categories.clone(),
		paymentModes: d.paymentModes.clone(),
		transactions: d.transactions.clone(),
		transfers:    d.transfers.clone(),
		employees:    d.employees.clone(),
		parts:        d.parts.clone(),
		users:        d.users.clone(),
		activity:     d.activity.clone(),
	}
}

func (d *data) next() int64 {
	d.seq++
	return d.seq
}

// insert adds a new row, failing on an identifier collision.
func insert[T any](d *data, t table[T], id string, v T) error {
	if _, exists := t[id]; exists {
		return fmt.Errorf("%w: id %s", apperrors.ErrDuplicate, id)
	}
	t[id] = row[T]{seq: d.next(), val: v}
	return nil
}

// replace overwrites an existing row, keeping its position.
func replace[T any](t table[T], id string, v T) error {
	r, ok := t[id]
	if !ok {
		return fmt.Errorf("%w: id %s", apperrors.ErrNotFound, id)
	}
	r.val = v
	t[id] = r
	return nil
}

// Store is an in-memory implementation of repositories.Store.
type Store struct {
	mu   sync.Mutex
	data *data
}

var _ portsrepo.Store = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newData()}
}

// Begin locks the store and hands out a private copy of its contents.
func (s *Store) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed to begin transaction", err)
	}
	s.mu.Lock()
	return &unitOfWork{store: s, data: s.data.clone()}, nil
}

type unitOfWork struct {
	store *Store
	data  *data
	done  bool
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return apperrors.NewStoreError("failed to commit transaction", fmt.Errorf("unit of work already finished"))
	}
	u.done = true
	u.store.data = u.data
	u.store.mu.Unlock()
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	u.store.mu.Unlock()
	return nil
}

func (u *unitOfWork) Businesses() portsrepo.BusinessRepositoryFacade {
	return &businessRepository{d: u.data}
}

func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade {
	return &accountRepository{d: u.data}
}

func (u *unitOfWork) Categories() portsrepo.CategoryRepositoryFacade {
	return &categoryRepository{d: u.data}
}

func (u *unitOfWork) PaymentModes() portsrepo.PaymentModeRepositoryFacade {
	return &paymentModeRepository{d: u.data}
}

func (u *unitOfWork) Transactions() portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{d: u.data}
}

func (u *unitOfWork) FundTransfers() portsrepo.FundTransferRepositoryFacade {
	return &fundTransferRepository{d: u.data}
}

func (u *unitOfWork) Employees() portsrepo.EmployeeRepositoryFacade {
	return &employeeRepository{d: u.data}
}

func (u *unitOfWork) Parts() portsrepo.PartRepositoryFacade {
	return &partRepository{d: u.data}
}

func (u *unitOfWork) Users() portsrepo.UserRepositoryFacade {
	return &userRepository{d: u.data}
}

func (u *unitOfWork) ActivityLogs() portsrepo.ActivityLogRepositoryFacade {
	return &activityLogRepository{d: u.data}
}
