package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// resolveCurrency validates code against the catalog, falling back to the business currency.
func resolveCurrency(ctx context.Context, uow portsrepo.UnitOfWork, businessID, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		business, err := uow.Businesses().FindBusinessByID(ctx, businessID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrNoActiveBusiness)
			}
			return "", err
		}
		code = business.CurrencyCode
	}
	if code == "" {
		code = domain.DefaultCurrencyCode
	}
	if _, ok := domain.FindCurrency(code); !ok {
		return "", validationError("unsupported currency %q", code)
	}
	return code, nil
}

func (s *ledgerService) CreateAccount(ctx context.Context, sess domain.Session, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("account name is required")
	}
	if !domain.FitsAmountScale(req.OpeningBalance) {
		return nil, validationError("opening balance has more than %d decimal places", domain.AmountScale)
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	currency, err := resolveCurrency(ctx, uow, sess.BusinessID, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		BusinessID:     sess.BusinessID,
		Name:           name,
		CurrencyCode:   currency,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     sess.Username,
			LastUpdatedAt: now,
			LastUpdatedBy: sess.Username,
		},
	}

	if err := uow.Accounts().SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_name", name))
		return nil, err
	}
	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionAccountCreated,
		fmt.Sprintf("Account '%s' created with opening balance %s", name, account.OpeningBalance.String()), now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit account creation", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("business_id", sess.BusinessID))
	return &account, nil
}

func (s *ledgerService) GetAccountByID(ctx context.Context, sess domain.Session, accountID string) (*domain.Account, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Accounts().FindAccountByID(ctx, sess.BusinessID, accountID)
}

func (s *ledgerService) ListAccounts(ctx context.Context, sess domain.Session) ([]domain.Account, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Accounts().ListAccounts(ctx, sess.BusinessID)
}

func (s *ledgerService) GetTotalBalance(ctx context.Context, sess domain.Session) (decimal.Decimal, error) {
	accounts, err := s.ListAccounts(ctx, sess)
	if err != nil {
		return decimal.Zero, err
	}
	return totalBalance(accounts), nil
}

func totalBalance(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.CurrentBalance)
	}
	return total
}

// UpdateAccount re-bases the running balance by the change in opening balance
// instead of replaying history.
func (s *ledgerService) UpdateAccount(ctx context.Context, sess domain.Session, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("account name cannot be empty")
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	account, err := uow.Accounts().FindAccountByID(ctx, sess.BusinessID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.CurrencyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
		if _, ok := domain.FindCurrency(code); !ok {
			return nil, validationError("unsupported currency %q", code)
		}
		account.CurrencyCode = code
	}

	changes := accounting.BalanceChanges{}
	if req.OpeningBalance != nil {
		if !domain.FitsAmountScale(*req.OpeningBalance) {
			return nil, validationError("opening balance has more than %d decimal places", domain.AmountScale)
		}
		changes.Add(account.AccountID, req.OpeningBalance.Sub(account.OpeningBalance))
		account.OpeningBalance = *req.OpeningBalance
	}

	now := s.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = sess.Username

	if err := uow.Accounts().UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	if len(changes) > 0 {
		if err := uow.Accounts().ApplyBalanceChanges(ctx, changes, sess.Username, now); err != nil {
			s.LogError(ctx, err, "Failed to re-base account balance", slog.String("account_id", accountID))
			return nil, err
		}
		account.CurrentBalance = account.CurrentBalance.Add(changes[account.AccountID])
	}
	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionAccountUpdated,
		fmt.Sprintf("Account '%s' updated", account.Name), now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit account update", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount only counts transactions. An account that took part in transfers
// but holds no transactions can be deleted; its transfers keep the dangling ID.
func (s *ledgerService) DeleteAccount(ctx context.Context, sess domain.Session, accountID string) error {
	if err := requireBusiness(sess); err != nil {
		return err
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	account, err := uow.Accounts().FindAccountByID(ctx, sess.BusinessID, accountID)
	if err != nil {
		return err
	}

	count, err := uow.Transactions().CountTransactions(ctx, sess.BusinessID, domain.TransactionFilter{AccountID: accountID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: account '%s' has %d transaction(s)", apperrors.ErrConstraintViolation, account.Name, count)
	}

	if err := uow.Accounts().DeleteAccount(ctx, sess.BusinessID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	if err := recordActivity(ctx, uow, sess.BusinessID, domain.ActionAccountDeleted,
		fmt.Sprintf("Account '%s' deleted", account.Name), s.Now()); err != nil {
		return err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit account deletion", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
