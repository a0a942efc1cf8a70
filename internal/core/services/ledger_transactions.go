package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionInput is the normalised form shared by create, update and CSV import.
type transactionInput struct {
	Amount        decimal.Decimal
	Type          domain.TransactionType
	AccountID     string
	CategoryID    string
	PaymentModeID string
	Notes         string
	Vendor        string
	Reference     string
	Date          time.Time
}

func (in transactionInput) validate() error {
	if !in.Amount.IsPositive() {
		return validationError("amount must be greater than zero")
	}
	if !domain.FitsAmountScale(in.Amount) {
		return validationError("amount has more than %d decimal places", domain.AmountScale)
	}
	if !in.Type.IsValid() {
		return validationError("invalid transaction type %q", in.Type)
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return validationError("account is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return validationError("category is required")
	}
	return nil
}

// checkReferences verifies that the account, category and optional payment mode
// belong to the business.
func checkReferences(ctx context.Context, uow portsrepo.UnitOfWork, businessID string, in transactionInput) error {
	if _, err := uow.Accounts().FindAccountByID(ctx, businessID, in.AccountID); err != nil {
		return fmt.Errorf("account %s: %w", in.AccountID, err)
	}
	if _, err := uow.Categories().FindCategoryByID(ctx, businessID, in.CategoryID); err != nil {
		return fmt.Errorf("category %s: %w", in.CategoryID, err)
	}
	if in.PaymentModeID != "" {
		if _, err := uow.PaymentModes().FindPaymentModeByID(ctx, businessID, in.PaymentModeID); err != nil {
			return fmt.Errorf("payment mode %s: %w", in.PaymentModeID, err)
		}
	}
	return nil
}

// createTransactionTx persists a transaction and moves its account balance inside uow.
// The caller owns commit.
func createTransactionTx(ctx context.Context, uow portsrepo.UnitOfWork, sess domain.Session, in transactionInput, now time.Time) (*domain.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, uow, sess.BusinessID, in); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BusinessID:    sess.BusinessID,
		AccountID:     in.AccountID,
		CategoryID:    in.CategoryID,
		PaymentModeID: in.PaymentModeID,
		Amount:        in.Amount,
		Type:          in.Type,
		Notes:         in.Notes,
		Vendor:        in.Vendor,
		Reference:     in.Reference,
		Date:          date.UTC().Truncate(time.Microsecond),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     sess.Username,
			LastUpdatedAt: now,
			LastUpdatedBy: sess.Username,
		},
	}

	if err := uow.Transactions().SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}

	changes := accounting.BalanceChanges{}
	changes.ApplyTransaction(txn)
	if err := uow.Accounts().ApplyBalanceChanges(ctx, changes, sess.Username, now); err != nil {
		return nil, err
	}

	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionTransactionCreated,
		fmt.Sprintf("Recorded %s of %s", txn.Type, txn.Amount.String()), now); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *ledgerService) mayChange(ctx context.Context, sess domain.Session, txn domain.Transaction, now time.Time, deleting bool) bool {
	if s.authorizer == nil {
		s.LogDebug(ctx, "No transaction authorizer configured, skipping edit window check",
			slog.String("transaction_id", txn.TransactionID))
		return true
	}
	if deleting {
		return s.authorizer.CanDeleteTransaction(sess, txn, now)
	}
	return s.authorizer.CanEditTransaction(sess, txn, now)
}

func (s *ledgerService) CreateTransaction(ctx context.Context, sess domain.Session, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	in := transactionInput{
		Amount:        req.Amount,
		Type:          req.Type,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		PaymentModeID: req.PaymentModeID,
		Notes:         req.Notes,
		Vendor:        req.Vendor,
		Reference:     req.Reference,
		Date:          req.Date,
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	txn, err := createTransactionTx(ctx, uow, sess, in, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction", slog.String("account_id", req.AccountID))
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction creation", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("amount", txn.Amount.String()))
	return txn, nil
}

func (s *ledgerService) GetTransactionByID(ctx context.Context, sess domain.Session, transactionID string) (*domain.Transaction, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Transactions().FindTransactionByID(ctx, sess.BusinessID, transactionID)
}

func (s *ledgerService) ListTransactions(ctx context.Context, sess domain.Session, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Transactions().ListTransactions(ctx, sess.BusinessID, filter)
}

// UpdateTransaction reverts the old effect and applies the new one as a single set of deltas,
// so moving a transaction between accounts touches both balances.
func (s *ledgerService) UpdateTransaction(ctx context.Context, sess domain.Session, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	in := transactionInput{
		Amount:        req.Amount,
		Type:          req.Type,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		PaymentModeID: req.PaymentModeID,
		Notes:         req.Notes,
		Vendor:        req.Vendor,
		Reference:     req.Reference,
		Date:          req.Date,
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	existing, err := uow.Transactions().FindTransactionByID(ctx, sess.BusinessID, transactionID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if !s.mayChange(ctx, sess, *existing, now, false) {
		return nil, fmt.Errorf("%w: the edit window for this transaction has passed", apperrors.ErrForbidden)
	}
	if err := checkReferences(ctx, uow, sess.BusinessID, in); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Amount = in.Amount
	updated.Type = in.Type
	updated.AccountID = in.AccountID
	updated.CategoryID = in.CategoryID
	updated.PaymentModeID = in.PaymentModeID
	updated.Notes = in.Notes
	updated.Vendor = in.Vendor
	updated.Reference = in.Reference
	if !in.Date.IsZero() {
		updated.Date = in.Date.UTC().Truncate(time.Microsecond)
	}
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = sess.Username

	changes := accounting.BalanceChanges{}
	changes.RevertTransaction(*existing)
	changes.ApplyTransaction(updated)

	if err := uow.Transactions().UpdateTransaction(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := uow.Accounts().ApplyBalanceChanges(ctx, changes, sess.Username, now); err != nil {
		s.LogError(ctx, err, "Failed to apply balance changes", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionTransactionUpdated,
		fmt.Sprintf("Transaction updated to %s %s", updated.Type, updated.Amount.String()), now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction update", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, sess domain.Session, transactionID string) error {
	if err := requireBusiness(sess); err != nil {
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	existing, err := uow.Transactions().FindTransactionByID(ctx, sess.BusinessID, transactionID)
	if err != nil {
		return err
	}

	now := s.Now()
	if !s.mayChange(ctx, sess, *existing, now, true) {
		return fmt.Errorf("%w: the edit window for this transaction has passed", apperrors.ErrForbidden)
	}

	changes := accounting.BalanceChanges{}
	changes.RevertTransaction(*existing)

	if err := uow.Transactions().DeleteTransaction(ctx, sess.BusinessID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	if err := uow.Accounts().ApplyBalanceChanges(ctx, changes, sess.Username, now); err != nil {
		s.LogError(ctx, err, "Failed to revert balance", slog.String("transaction_id", transactionID))
		return err
	}
	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionTransactionDeleted,
		fmt.Sprintf("Deleted %s of %s", existing.Type, existing.Amount.String()), now); err != nil {
		return err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction deletion", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *ledgerService) GetNetIncome(ctx context.Context, sess domain.Session, rng *domain.DateRange) (decimal.Decimal, error) {
	summary, err := s.GetSummary(ctx, sess, rng)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.NetIncome, nil
}

func (s *ledgerService) GetSummary(ctx context.Context, sess domain.Session, rng *domain.DateRange) (*domain.Summary, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	var filter domain.TransactionFilter
	if rng != nil {
		filter.Range = *rng
	}
	txns, err := uow.Transactions().ListTransactions(ctx, sess.BusinessID, filter)
	if err != nil {
		return nil, err
	}
	accounts, err := uow.Accounts().ListAccounts(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}

	income, expense, net := accounting.NetIncome(txns)
	return &domain.Summary{
		Range:        rng,
		TotalIncome:  income,
		TotalExpense: expense,
		NetIncome:    net,
		TotalBalance: totalBalance(accounts),
	}, nil
}
