package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
}

// --- businesses ---

type businessRepository struct{ d *data }

func (r *businessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	b, ok := r.d.businesses.get(businessID)
	if !ok {
		return nil, notFound("business", businessID)
	}
	return &b, nil
}

func (r *businessRepository) FindActiveBusiness(ctx context.Context) (*domain.Business, error) {
	active := r.d.businesses.values(func(b domain.Business) bool { return b.IsActive })
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: active business", apperrors.ErrNotFound)
	}
	return &active[0], nil
}

func (r *businessRepository) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	out := r.d.businesses.values(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *businessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	return insert(r.d, r.d.businesses, business.BusinessID, business)
}

func (r *businessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	return replace(r.d.businesses, business.BusinessID, business)
}

func (r *businessRepository) SetActiveBusiness(ctx context.Context, businessID string, now time.Time) error {
	if _, ok := r.d.businesses[businessID]; !ok {
		return notFound("business", businessID)
	}
	for id, row := range r.d.businesses {
		want := id == businessID
		if row.val.IsActive != want {
			row.val.IsActive = want
			row.val.LastUpdatedAt = now
			r.d.businesses[id] = row
		}
	}
	return nil
}

func (r *businessRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	if _, ok := r.d.businesses[businessID]; !ok {
		return notFound("business", businessID)
	}
	deleteOwned(r.d.activity, businessID, func(v domain.ActivityLog) string { return v.BusinessID })
	deleteOwned(r.d.transfers, businessID, func(v domain.FundTransfer) string { return v.BusinessID })
	deleteOwned(r.d.transactions, businessID, func(v domain.Transaction) string { return v.BusinessID })
	deleteOwned(r.d.categories, businessID, func(v domain.Category) string { return v.BusinessID })
	deleteOwned(r.d.paymentModes, businessID, func(v domain.PaymentMode) string { return v.BusinessID })
	deleteOwned(r.d.accounts, businessID, func(v domain.Account) string { return v.BusinessID })
	deleteOwned(r.d.employees, businessID, func(v domain.Employee) string { return v.BusinessID })
	deleteOwned(r.d.parts, businessID, func(v domain.Part) string { return v.BusinessID })
	delete(r.d.businesses, businessID)
	return nil
}

func deleteOwned[T any](t table[T], businessID string, owner func(T) string) {
	for id, row := range t {
		if owner(row.val) == businessID {
			delete(t, id)
		}
	}
}

// --- accounts ---

type accountRepository struct{ d *data }

func (r *accountRepository) FindAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error) {
	a, ok := r.d.accounts.get(accountID)
	if !ok || a.BusinessID != businessID {
		return nil, notFound("account", accountID)
	}
	return &a, nil
}

func (r *accountRepository) FindAccountByName(ctx context.Context, businessID, name string) (*domain.Account, error) {
	matches := r.d.accounts.values(func(a domain.Account) bool { return a.BusinessID == businessID && a.Name == name })
	if len(matches) == 0 {
		return nil, notFound("account", name)
	}
	return &matches[0], nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, businessID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := r.d.accounts.get(id); ok && a.BusinessID == businessID {
			out[id] = a
		}
	}
	return out, nil
}

// LockAccountsByIDs needs no row locks; Begin already holds the store lock.
func (r *accountRepository) LockAccountsByIDs(ctx context.Context, businessID string, accountIDs []string) (map[string]domain.Account, error) {
	return r.FindAccountsByIDs(ctx, businessID, accountIDs)
}

func (r *accountRepository) ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	out := r.d.accounts.values(func(a domain.Account) bool { return a.BusinessID == businessID })
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insert(r.d, r.d.accounts, account.AccountID, account)
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	existing, ok := r.d.accounts.get(account.AccountID)
	if !ok || existing.BusinessID != account.BusinessID {
		return notFound("account", account.AccountID)
	}
	account.CurrentBalance = existing.CurrentBalance
	return replace(r.d.accounts, account.AccountID, account)
}

func (r *accountRepository) DeleteAccount(ctx context.Context, businessID, accountID string) error {
	a, ok := r.d.accounts.get(accountID)
	if !ok || a.BusinessID != businessID {
		return notFound("account", accountID)
	}
	for _, row := range r.d.transactions {
		if row.val.AccountID == accountID {
			return fmt.Errorf("%w: account %s is referenced by transactions", apperrors.ErrConstraintViolation, accountID)
		}
	}
	delete(r.d.accounts, accountID)
	return nil
}

func (r *accountRepository) ApplyBalanceChanges(ctx context.Context, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	for id := range balanceChanges {
		if _, ok := r.d.accounts[id]; !ok {
			return notFound("account", id)
		}
	}
	for id, delta := range balanceChanges {
		row := r.d.accounts[id]
		row.val.CurrentBalance = row.val.CurrentBalance.Add(delta)
		row.val.LastUpdatedAt = now
		row.val.LastUpdatedBy = updatedBy
		r.d.accounts[id] = row
	}
	return nil
}

// --- categories and payment modes ---

type categoryRepository struct{ d *data }

func (r *categoryRepository) FindCategoryByID(ctx context.Context, businessID, categoryID string) (*domain.Category, error) {
	c, ok := r.d.categories.get(categoryID)
	if !ok || c.BusinessID != businessID {
		return nil, notFound("category", categoryID)
	}
	return &c, nil
}

func (r *categoryRepository) FindCategoryByName(ctx context.Context, businessID, name string) (*domain.Category, error) {
	matches := r.d.categories.values(func(c domain.Category) bool { return c.BusinessID == businessID && c.Name == name })
	if len(matches) == 0 {
		return nil, notFound("category", name)
	}
	return &matches[0], nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, businessID string) ([]domain.Category, error) {
	out := r.d.categories.values(func(c domain.Category) bool { return c.BusinessID == businessID })
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *categoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	if _, err := r.FindCategoryByName(ctx, category.BusinessID, category.Name); err == nil {
		return fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, category.Name)
	}
	return insert(r.d, r.d.categories, category.CategoryID, category)
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if existing, err := r.FindCategoryByName(ctx, category.BusinessID, category.Name); err == nil && existing.CategoryID != category.CategoryID {
		return fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, category.Name)
	}
	return replace(r.d.categories, category.CategoryID, category)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, businessID, categoryID string) error {
	if _, err := r.FindCategoryByID(ctx, businessID, categoryID); err != nil {
		return err
	}
	delete(r.d.categories, categoryID)
	return nil
}

type paymentModeRepository struct{ d *data }

func (r *paymentModeRepository) FindPaymentModeByID(ctx context.Context, businessID, paymentModeID string) (*domain.PaymentMode, error) {
	p, ok := r.d.paymentModes.get(paymentModeID)
	if !ok || p.BusinessID != businessID {
		return nil, notFound("payment mode", paymentModeID)
	}
	return &p, nil
}

func (r *paymentModeRepository) FindPaymentModeByName(ctx context.Context, businessID, name string) (*domain.PaymentMode, error) {
	matches := r.d.paymentModes.values(func(p domain.PaymentMode) bool { return p.BusinessID == businessID && p.Name == name })
	if len(matches) == 0 {
		return nil, notFound("payment mode", name)
	}
	return &matches[0], nil
}

func (r *paymentModeRepository) ListPaymentModes(ctx context.Context, businessID string) ([]domain.PaymentMode, error) {
	out := r.d.paymentModes.values(func(p domain.PaymentMode) bool { return p.BusinessID == businessID })
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *paymentModeRepository) SavePaymentMode(ctx context.Context, paymentMode domain.PaymentMode) error {
	if _, err := r.FindPaymentModeByName(ctx, paymentMode.BusinessID, paymentMode.Name); err == nil {
		return fmt.Errorf("%w: payment mode %q", apperrors.ErrDuplicate, paymentMode.Name)
	}
	return insert(r.d, r.d.paymentModes, paymentMode.PaymentModeID, paymentMode)
}

func (r *paymentModeRepository) DeletePaymentMode(ctx context.Context, businessID, paymentModeID string) error {
	if _, err := r.FindPaymentModeByID(ctx, businessID, paymentModeID); err != nil {
		return err
	}
	delete(r.d.paymentModes, paymentModeID)
	return nil
}

// --- transactions and transfers ---

type transactionRepository struct{ d *data }

func (r *transactionRepository) FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error) {
	t, ok := r.d.transactions.get(transactionID)
	if !ok || t.BusinessID != businessID {
		return nil, notFound("transaction", transactionID)
	}
	return &t, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	out := r.d.transactions.values(func(t domain.Transaction) bool {
		return t.BusinessID == businessID && filter.Matches(t)
	})
	// values is oldest-inserted first; reversing before the stable sort puts the newest first on ties.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *transactionRepository) CountTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter) (int, error) {
	n := 0
	for _, row := range r.d.transactions {
		if row.val.BusinessID == businessID && filter.Matches(row.val) {
			n++
		}
	}
	return n, nil
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insert(r.d, r.d.transactions, txn.TransactionID, txn)
}

func (r *transactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return replace(r.d.transactions, txn.TransactionID, txn)
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, businessID, transactionID string) error {
	if _, err := r.FindTransactionByID(ctx, businessID, transactionID); err != nil {
		return err
	}
	delete(r.d.transactions, transactionID)
	return nil
}

type fundTransferRepository struct{ d *data }

func (r *fundTransferRepository) SaveFundTransfer(ctx context.Context, transfer domain.FundTransfer) error {
	return insert(r.d, r.d.transfers, transfer.FundTransferID, transfer)
}

func (r *fundTransferRepository) ListFundTransfers(ctx context.Context, businessID, accountID string) ([]domain.FundTransfer, error) {
	out := r.d.transfers.values(func(f domain.FundTransfer) bool {
		return f.BusinessID == businessID && (accountID == "" || f.Touches(accountID))
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
