// Package sqlstore implements the repository ports over database/sql for
// PostgreSQL (pgx stdlib) and SQLite (mattn/go-sqlite3).
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
)

// Store opens one database transaction per unit of work.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ portsrepo.Store = (*Store)(nil)

// New wraps an open, migrated database.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle for health checks and shutdown.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to begin transaction", err)
	}
	return &unitOfWork{q: querier{tx: tx, dialect: s.dialect}}, nil
}

// querier runs rebound statements on the unit's transaction.
type querier struct {
	tx      *sql.Tx
	dialect Dialect
}

func (q querier) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.tx.ExecContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.tx.QueryContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.tx.QueryRowContext(ctx, q.dialect.Rebind(query), args...)
}

// execOne runs a write that must touch exactly one row; zero rows is ErrNotFound.
func (q querier) execOne(ctx context.Context, what, id, query string, args ...any) error {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to write %s %s", what, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translateError(err, "failed to write %s %s", what, id)
	}
	if n == 0 {
		return translateError(sql.ErrNoRows, "%s %s", what, id)
	}
	return nil
}

type unitOfWork struct {
	q    querier
	done bool
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return apperrors.NewStoreError("failed to commit transaction", sql.ErrTxDone)
	}
	u.done = true
	if err := u.q.tx.Commit(); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.q.tx.Rollback(); err != nil {
		return apperrors.NewStoreError("failed to roll back transaction", err)
	}
	return nil
}

func (u *unitOfWork) Businesses() portsrepo.BusinessRepositoryFacade {
	return &businessRepository{q: u.q}
}

func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade {
	return &accountRepository{q: u.q}
}

func (u *unitOfWork) Categories() portsrepo.CategoryRepositoryFacade {
	return &categoryRepository{q: u.q}
}

func (u *unitOfWork) PaymentModes() portsrepo.PaymentModeRepositoryFacade {
	return &paymentModeRepository{q: u.q}
}

func (u *unitOfWork) Transactions() portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{q: u.q}
}

func (u *unitOfWork) FundTransfers() portsrepo.FundTransferRepositoryFacade {
	return &fundTransferRepository{q: u.q}
}

func (u *unitOfWork) Employees() portsrepo.EmployeeRepositoryFacade {
	return &employeeRepository{q: u.q}
}

func (u *unitOfWork) Parts() portsrepo.PartRepositoryFacade {
	return &partRepository{q: u.q}
}

func (u *unitOfWork) Users() portsrepo.UserRepositoryFacade {
	return &userRepository{q: u.q}
}

func (u *unitOfWork) ActivityLogs() portsrepo.ActivityLogRepositoryFacade {
	return &activityLogRepository{q: u.q}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func utc(t time.Time) time.Time {
	return t.UTC()
}

// collect drains rows through scan, closing them.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
