package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

const businessColumns = `business_id, name, address, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type businessRepository struct{ q querier }

func scanBusiness(s scanner) (domain.Business, error) {
	var b domain.Business
	err := s.Scan(&b.BusinessID, &b.Name, &b.Address, &b.CurrencyCode, &b.IsActive,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy)
	b.CreatedAt, b.LastUpdatedAt = utc(b.CreatedAt), utc(b.LastUpdatedAt)
	return b, err
}

func (r *businessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = ?`
	b, err := scanBusiness(r.q.queryRow(ctx, query, businessID))
	if err != nil {
		return nil, translateError(err, "failed to find business %s", businessID)
	}
	return &b, nil
}

func (r *businessRepository) FindActiveBusiness(ctx context.Context) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE is_active = ? LIMIT 1`
	b, err := scanBusiness(r.q.queryRow(ctx, query, true))
	if err != nil {
		return nil, translateError(err, "failed to find active business")
	}
	return &b, nil
}

func (r *businessRepository) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses ORDER BY created_at ASC, business_id ASC`
	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to list businesses")
	}
	out, err := collect(rows, scanBusiness)
	if err != nil {
		return nil, translateError(err, "failed to scan businesses")
	}
	return out, nil
}

func (r *businessRepository) SaveBusiness(ctx context.Context, b domain.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, b.BusinessID, b.Name, b.Address, b.CurrencyCode, b.IsActive,
		b.CreatedAt.UTC(), b.CreatedBy, b.LastUpdatedAt.UTC(), b.LastUpdatedBy)
	return translateError(err, "failed to save business %s", b.BusinessID)
}

func (r *businessRepository) UpdateBusiness(ctx context.Context, b domain.Business) error {
	query := `
		UPDATE businesses SET name = ?, address = ?, currency_code = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ?`
	return r.q.execOne(ctx, "business", b.BusinessID, query,
		b.Name, b.Address, b.CurrencyCode, b.LastUpdatedAt.UTC(), b.LastUpdatedBy, b.BusinessID)
}

// SetActiveBusiness clears the flag first so the single-active index never sees two rows.
func (r *businessRepository) SetActiveBusiness(ctx context.Context, businessID string, now time.Time) error {
	if _, err := r.FindBusinessByID(ctx, businessID); err != nil {
		return err
	}
	deactivate := `UPDATE businesses SET is_active = ?, last_updated_at = ? WHERE is_active = ? AND business_id <> ?`
	if _, err := r.q.exec(ctx, deactivate, false, now.UTC(), true, businessID); err != nil {
		return translateError(err, "failed to clear active business")
	}
	activate := `UPDATE businesses SET is_active = ?, last_updated_at = ? WHERE business_id = ? AND is_active = ?`
	if _, err := r.q.exec(ctx, activate, true, now.UTC(), businessID, false); err != nil {
		return translateError(err, "failed to activate business %s", businessID)
	}
	return nil
}

// businessOwnedTables are deleted children first.
var businessOwnedTables = []string{
	"activity_logs", "fund_transfers", "transactions", "categories",
	"payment_modes", "accounts", "employees", "parts",
}

func (r *businessRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	if _, err := r.FindBusinessByID(ctx, businessID); err != nil {
		return err
	}
	for _, table := range businessOwnedTables {
		if _, err := r.q.exec(ctx, `DELETE FROM `+table+` WHERE business_id = ?`, businessID); err != nil {
			return translateError(err, "failed to delete %s of business %s", table, businessID)
		}
	}
	return r.q.execOne(ctx, "business", businessID, `DELETE FROM businesses WHERE business_id = ?`, businessID)
}

// --- accounts ---

const accountColumns = `account_id, business_id, name, currency_code, opening_balance, current_balance, created_at, created_by, last_updated_at, last_updated_by`

type accountRepository struct{ q querier }

func scanAccount(s scanner) (domain.Account, error) {
	var a domain.Account
	err := s.Scan(&a.AccountID, &a.BusinessID, &a.Name, &a.CurrencyCode, &a.OpeningBalance, &a.CurrentBalance,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy)
	a.CreatedAt, a.LastUpdatedAt = utc(a.CreatedAt), utc(a.LastUpdatedAt)
	return a, err
}

func (r *accountRepository) FindAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = ? AND account_id = ?`
	a, err := scanAccount(r.q.queryRow(ctx, query, businessID, accountID))
	if err != nil {
		return nil, translateError(err, "failed to find account %s", accountID)
	}
	return &a, nil
}

func (r *accountRepository) FindAccountByName(ctx context.Context, businessID, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = ? AND name = ? ORDER BY created_at LIMIT 1`
	a, err := scanAccount(r.q.queryRow(ctx, query, businessID, name))
	if err != nil {
		return nil, translateError(err, "failed to find account %q", name)
	}
	return &a, nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, businessID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findAccountsByIDs(ctx, businessID, accountIDs, false)
}

func (r *accountRepository) LockAccountsByIDs(ctx context.Context, businessID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.findAccountsByIDs(ctx, businessID, accountIDs, true)
}

// accountsByIDsQuery orders by ID so concurrent lockers take rows in the same order.
func accountsByIDsQuery(d Dialect, n int, lock bool) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = ? AND account_id IN (` + placeholders + `) ORDER BY account_id`
	if lock {
		query += d.lockSuffix
	}
	return query
}

func (r *accountRepository) findAccountsByIDs(ctx context.Context, businessID string, accountIDs []string, lock bool) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(accountIDs)+1)
	args = append(args, businessID)
	for _, id := range accountIDs {
		args = append(args, id)
	}
	rows, err := r.q.query(ctx, accountsByIDsQuery(r.q.dialect, len(accountIDs), lock), args...)
	if err != nil {
		return nil, translateError(err, "failed to find accounts")
	}
	accounts, err := collect(rows, scanAccount)
	if err != nil {
		return nil, translateError(err, "failed to scan accounts")
	}
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = ? ORDER BY LOWER(name), created_at`
	rows, err := r.q.query(ctx, query, businessID)
	if err != nil {
		return nil, translateError(err, "failed to list accounts")
	}
	out, err := collect(rows, scanAccount)
	if err != nil {
		return nil, translateError(err, "failed to scan accounts")
	}
	return out, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, a domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, a.AccountID, a.BusinessID, a.Name, a.CurrencyCode, a.OpeningBalance, a.CurrentBalance,
		a.CreatedAt.UTC(), a.CreatedBy, a.LastUpdatedAt.UTC(), a.LastUpdatedBy)
	return translateError(err, "failed to save account %s", a.AccountID)
}

// UpdateAccount leaves current_balance alone; it only moves through ApplyBalanceChanges.
func (r *accountRepository) UpdateAccount(ctx context.Context, a domain.Account) error {
	query := `
		UPDATE accounts SET name = ?, currency_code = ?, opening_balance = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND account_id = ?`
	return r.q.execOne(ctx, "account", a.AccountID, query,
		a.Name, a.CurrencyCode, a.OpeningBalance, a.LastUpdatedAt.UTC(), a.LastUpdatedBy, a.BusinessID, a.AccountID)
}

func (r *accountRepository) DeleteAccount(ctx context.Context, businessID, accountID string) error {
	var n int
	err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE business_id = ? AND account_id = ?`, businessID, accountID).Scan(&n)
	if err != nil {
		return translateError(err, "failed to count transactions of account %s", accountID)
	}
	if n > 0 {
		return fmt.Errorf("%w: account %s is referenced by %d transaction(s)", apperrors.ErrConstraintViolation, accountID, n)
	}
	return r.q.execOne(ctx, "account", accountID, `DELETE FROM accounts WHERE business_id = ? AND account_id = ?`, businessID, accountID)
}

// ApplyBalanceChanges reads, adds and writes each balance in Go so both
// dialects keep exact decimal arithmetic. IDs are visited in sorted order so
// concurrent units lock rows consistently.
func (r *accountRepository) ApplyBalanceChanges(ctx context.Context, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		var current decimal.Decimal
		query := `SELECT current_balance FROM accounts WHERE account_id = ?` + r.q.dialect.lockSuffix
		if err := r.q.queryRow(ctx, query, id).Scan(&current); err != nil {
			return translateError(err, "failed to read balance of account %s", id)
		}
		update := `UPDATE accounts SET current_balance = ?, last_updated_at = ?, last_updated_by = ? WHERE account_id = ?`
		if _, err := r.q.exec(ctx, update, current.Add(balanceChanges[id]), now.UTC(), updatedBy, id); err != nil {
			return translateError(err, "failed to update balance of account %s", id)
		}
	}
	return nil
}

// --- categories and payment modes ---

const categoryColumns = `category_id, business_id, name, color, created_at, created_by, last_updated_at, last_updated_by`

type categoryRepository struct{ q querier }

func scanCategory(s scanner) (domain.Category, error) {
	var c domain.Category
	err := s.Scan(&c.CategoryID, &c.BusinessID, &c.Name, &c.Color, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	c.CreatedAt, c.LastUpdatedAt = utc(c.CreatedAt), utc(c.LastUpdatedAt)
	return c, err
}

func (r *categoryRepository) FindCategoryByID(ctx context.Context, businessID, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE business_id = ? AND category_id = ?`
	c, err := scanCategory(r.q.queryRow(ctx, query, businessID, categoryID))
	if err != nil {
		return nil, translateError(err, "failed to find category %s", categoryID)
	}
	return &c, nil
}

func (r *categoryRepository) FindCategoryByName(ctx context.Context, businessID, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE business_id = ? AND name = ?`
	c, err := scanCategory(r.q.queryRow(ctx, query, businessID, name))
	if err != nil {
		return nil, translateError(err, "failed to find category %q", name)
	}
	return &c, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, businessID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE business_id = ? ORDER BY LOWER(name)`
	rows, err := r.q.query(ctx, query, businessID)
	if err != nil {
		return nil, translateError(err, "failed to list categories")
	}
	out, err := collect(rows, scanCategory)
	if err != nil {
		return nil, translateError(err, "failed to scan categories")
	}
	return out, nil
}

func (r *categoryRepository) SaveCategory(ctx context.Context, c domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, c.CategoryID, c.BusinessID, c.Name, c.Color,
		c.CreatedAt.UTC(), c.CreatedBy, c.LastUpdatedAt.UTC(), c.LastUpdatedBy)
	return translateError(err, "failed to save category %q", c.Name)
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, c domain.Category) error {
	query := `
		UPDATE categories SET name = ?, color = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND category_id = ?`
	return r.q.execOne(ctx, "category", c.CategoryID, query,
		c.Name, c.Color, c.LastUpdatedAt.UTC(), c.LastUpdatedBy, c.BusinessID, c.CategoryID)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, businessID, categoryID string) error {
	return r.q.execOne(ctx, "category", categoryID,
		`DELETE FROM categories WHERE business_id = ? AND category_id = ?`, businessID, categoryID)
}

const paymentModeColumns = `payment_mode_id, business_id, name, created_at, created_by, last_updated_at, last_updated_by`

type paymentModeRepository struct{ q querier }

func scanPaymentMode(s scanner) (domain.PaymentMode, error) {
	var p domain.PaymentMode
	err := s.Scan(&p.PaymentModeID, &p.BusinessID, &p.Name, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy)
	p.CreatedAt, p.LastUpdatedAt = utc(p.CreatedAt), utc(p.LastUpdatedAt)
	return p, err
}

func (r *paymentModeRepository) FindPaymentModeByID(ctx context.Context, businessID, paymentModeID string) (*domain.PaymentMode, error) {
	query := `SELECT ` + paymentModeColumns + ` FROM payment_modes WHERE business_id = ? AND payment_mode_id = ?`
	p, err := scanPaymentMode(r.q.queryRow(ctx, query, businessID, paymentModeID))
	if err != nil {
		return nil, translateError(err, "failed to find payment mode %s", paymentModeID)
	}
	return &p, nil
}

func (r *paymentModeRepository) FindPaymentModeByName(ctx context.Context, businessID, name string) (*domain.PaymentMode, error) {
	query := `SELECT ` + paymentModeColumns + ` FROM payment_modes WHERE business_id = ? AND name = ?`
	p, err := scanPaymentMode(r.q.queryRow(ctx, query, businessID, name))
	if err != nil {
		return nil, translateError(err, "failed to find payment mode %q", name)
	}
	return &p, nil
}

func (r *paymentModeRepository) ListPaymentModes(ctx context.Context, businessID string) ([]domain.PaymentMode, error) {
	query := `SELECT ` + paymentModeColumns + ` FROM payment_modes WHERE business_id = ? ORDER BY LOWER(name)`
	rows, err := r.q.query(ctx, query, businessID)
	if err != nil {
		return nil, translateError(err, "failed to list payment modes")
	}
	out, err := collect(rows, scanPaymentMode)
	if err != nil {
		return nil, translateError(err, "failed to scan payment modes")
	}
	return out, nil
}

func (r *paymentModeRepository) SavePaymentMode(ctx context.Context, p domain.PaymentMode) error {
	query := `INSERT INTO payment_modes (` + paymentModeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, p.PaymentModeID, p.BusinessID, p.Name,
		p.CreatedAt.UTC(), p.CreatedBy, p.LastUpdatedAt.UTC(), p.LastUpdatedBy)
	return translateError(err, "failed to save payment mode %q", p.Name)
}

func (r *paymentModeRepository) DeletePaymentMode(ctx context.Context, businessID, paymentModeID string) error {
	return r.q.execOne(ctx, "payment mode", paymentModeID,
		`DELETE FROM payment_modes WHERE business_id = ? AND payment_mode_id = ?`, businessID, paymentModeID)
}

// --- transactions and transfers ---

const transactionColumns = `transaction_id, business_id, account_id, category_id, payment_mode_id, amount, type, notes, vendor, reference, date, created_at, created_by, last_updated_at, last_updated_by`

type transactionRepository struct{ q querier }

func scanTransaction(s scanner) (domain.Transaction, error) {
	var t domain.Transaction
	var mode sql.NullString
	err := s.Scan(&t.TransactionID, &t.BusinessID, &t.AccountID, &t.CategoryID, &mode, &t.Amount, &t.Type,
		&t.Notes, &t.Vendor, &t.Reference, &t.Date, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	t.PaymentModeID = mode.String
	t.Date, t.CreatedAt, t.LastUpdatedAt = utc(t.Date), utc(t.CreatedAt), utc(t.LastUpdatedAt)
	return t, err
}

// whereTransactions renders the filter. The date range is half-open.
func whereTransactions(businessID string, f domain.TransactionFilter) (string, []any) {
	clauses := []string{"business_id = ?"}
	args := []any{businessID}
	if f.AccountID != "" {
		clauses = append(clauses, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if f.CategoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.PaymentModeID != "" {
		clauses = append(clauses, "payment_mode_id = ?")
		args = append(args, f.PaymentModeID)
	}
	if !f.Range.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, f.Range.From.UTC())
	}
	if !f.Range.To.IsZero() {
		clauses = append(clauses, "date < ?")
		args = append(args, f.Range.To.UTC())
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE business_id = ? AND transaction_id = ?`
	t, err := scanTransaction(r.q.queryRow(ctx, query, businessID, transactionID))
	if err != nil {
		return nil, translateError(err, "failed to find transaction %s", transactionID)
	}
	return &t, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := whereTransactions(businessID, filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where + ` ORDER BY date DESC, created_at DESC, transaction_id DESC`
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list transactions")
	}
	out, err := collect(rows, scanTransaction)
	if err != nil {
		return nil, translateError(err, "failed to scan transactions")
	}
	return out, nil
}

func (r *transactionRepository) CountTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter) (int, error) {
	where, args := whereTransactions(businessID, filter)
	var n int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&n); err != nil {
		return 0, translateError(err, "failed to count transactions")
	}
	return n, nil
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, t domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, t.TransactionID, t.BusinessID, t.AccountID, t.CategoryID, nullString(t.PaymentModeID),
		t.Amount, string(t.Type), t.Notes, t.Vendor, t.Reference, t.Date.UTC(),
		t.CreatedAt.UTC(), t.CreatedBy, t.LastUpdatedAt.UTC(), t.LastUpdatedBy)
	return translateError(err, "failed to save transaction %s", t.TransactionID)
}

func (r *transactionRepository) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	query := `
		UPDATE transactions SET account_id = ?, category_id = ?, payment_mode_id = ?, amount = ?, type = ?,
			notes = ?, vendor = ?, reference = ?, date = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND transaction_id = ?`
	return r.q.execOne(ctx, "transaction", t.TransactionID, query,
		t.AccountID, t.CategoryID, nullString(t.PaymentModeID), t.Amount, string(t.Type),
		t.Notes, t.Vendor, t.Reference, t.Date.UTC(), t.LastUpdatedAt.UTC(), t.LastUpdatedBy,
		t.BusinessID, t.TransactionID)
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, businessID, transactionID string) error {
	return r.q.execOne(ctx, "transaction", transactionID,
		`DELETE FROM transactions WHERE business_id = ? AND transaction_id = ?`, businessID, transactionID)
}

const fundTransferColumns = `fund_transfer_id, business_id, from_account_id, to_account_id, amount, notes, date, created_at, created_by`

type fundTransferRepository struct{ q querier }

func scanFundTransfer(s scanner) (domain.FundTransfer, error) {
	var f domain.FundTransfer
	err := s.Scan(&f.FundTransferID, &f.BusinessID, &f.FromAccountID, &f.ToAccountID, &f.Amount, &f.Notes,
		&f.Date, &f.CreatedAt, &f.CreatedBy)
	f.Date, f.CreatedAt = utc(f.Date), utc(f.CreatedAt)
	return f, err
}

func (r *fundTransferRepository) SaveFundTransfer(ctx context.Context, f domain.FundTransfer) error {
	query := `INSERT INTO fund_transfers (` + fundTransferColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.exec(ctx, query, f.FundTransferID, f.BusinessID, f.FromAccountID, f.ToAccountID, f.Amount, f.Notes,
		f.Date.UTC(), f.CreatedAt.UTC(), f.CreatedBy)
	return translateError(err, "failed to save fund transfer %s", f.FundTransferID)
}

func (r *fundTransferRepository) ListFundTransfers(ctx context.Context, businessID, accountID string) ([]domain.FundTransfer, error) {
	query := `SELECT ` + fundTransferColumns + ` FROM fund_transfers WHERE business_id = ?`
	args := []any{businessID}
	if accountID != "" {
		query += ` AND (from_account_id = ? OR to_account_id = ?)`
		args = append(args, accountID, accountID)
	}
	query += ` ORDER BY date DESC, created_at DESC, fund_transfer_id DESC`
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list fund transfers")
	}
	out, err := collect(rows, scanFundTransfer)
	if err != nil {
		return nil, translateError(err, "failed to scan fund transfers")
	}
	return out, nil
}
