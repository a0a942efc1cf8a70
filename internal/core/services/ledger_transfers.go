package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/utils/accounting"
	"github.com/google/uuid"
)

// TransferFunds debits one account and credits another. The source must hold
// at least the transferred amount.
func (s *ledgerService) TransferFunds(ctx context.Context, sess domain.Session, req dto.TransferFundsRequest) (*domain.FundTransfer, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if req.FromAccountID == "" || req.ToAccountID == "" {
		return nil, validationError("both accounts are required")
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, validationError("cannot transfer to the same account")
	}
	if !req.Amount.IsPositive() {
		return nil, validationError("transfer amount must be greater than zero")
	}
	if !domain.FitsAmountScale(req.Amount) {
		return nil, validationError("transfer amount has more than %d decimal places", domain.AmountScale)
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	accounts, err := uow.Accounts().LockAccountsByIDs(ctx, sess.BusinessID, []string{req.FromAccountID, req.ToAccountID})
	if err != nil {
		return nil, err
	}
	from, ok := accounts[req.FromAccountID]
	if !ok {
		return nil, fmt.Errorf("source account %s: %w", req.FromAccountID, apperrors.ErrNotFound)
	}
	to, ok := accounts[req.ToAccountID]
	if !ok {
		return nil, fmt.Errorf("destination account %s: %w", req.ToAccountID, apperrors.ErrNotFound)
	}
	if from.CurrentBalance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: account '%s' holds %s, transfer needs %s",
			apperrors.ErrInsufficientFunds, from.Name, from.CurrentBalance.String(), req.Amount.String())
	}

	now := s.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	transfer := domain.FundTransfer{
		FundTransferID: uuid.NewString(),
		BusinessID:     sess.BusinessID,
		FromAccountID:  from.AccountID,
		ToAccountID:    to.AccountID,
		Amount:         req.Amount,
		Notes:          req.Notes,
		Date:           date.UTC().Truncate(time.Microsecond),
		CreatedAt:      now,
		CreatedBy:      sess.Username,
	}

	if err := uow.FundTransfers().SaveFundTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Failed to save fund transfer")
		return nil, err
	}

	changes := accounting.BalanceChanges{}
	changes.ApplyTransfer(transfer)
	if err := uow.Accounts().ApplyBalanceChanges(ctx, changes, sess.Username, now); err != nil {
		s.LogError(ctx, err, "Failed to apply transfer balances", slog.String("fund_transfer_id", transfer.FundTransferID))
		return nil, err
	}
	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionFundTransfer,
		fmt.Sprintf("Transferred %s from '%s' to '%s'", transfer.Amount.String(), from.Name, to.Name), now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit fund transfer", slog.String("fund_transfer_id", transfer.FundTransferID))
		return nil, err
	}

	s.LogInfo(ctx, "Funds transferred",
		slog.String("fund_transfer_id", transfer.FundTransferID),
		slog.String("from_account_id", from.AccountID),
		slog.String("to_account_id", to.AccountID),
		slog.String("amount", transfer.Amount.String()))
	return &transfer, nil
}

// ListFundTransfers lists the transfers of the business, optionally only those touching accountID.
func (s *ledgerService) ListFundTransfers(ctx context.Context, sess domain.Session, accountID string) ([]domain.FundTransfer, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.FundTransfers().ListFundTransfers(ctx, sess.BusinessID, accountID)
}
