package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopSnapshotVersion is written into every shop snapshot.
const ShopSnapshotVersion = "1.0"

type backupService struct {
	BaseService
	store portsrepo.Store
}

// NewBackupService creates the backup and restore engine.
func NewBackupService(store portsrepo.Store) portssvc.BackupSvcFacade {
	return &backupService{store: store}
}

func formatError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrFormat, fmt.Sprintf(format, args...))
}

// activeBusiness loads the session business, turning a missing one into ErrNoActiveBusiness.
func activeBusiness(ctx context.Context, uow portsrepo.UnitOfWork, sess domain.Session) (*domain.Business, error) {
	if !sess.HasBusiness() {
		return nil, apperrors.ErrNoActiveBusiness
	}
	business, err := uow.Businesses().FindBusinessByID(ctx, sess.BusinessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoActiveBusiness
		}
		return nil, err
	}
	return business, nil
}

func (s *backupService) ExportBackup(ctx context.Context, sess domain.Session) ([]byte, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	business, err := activeBusiness(ctx, uow, sess)
	if err != nil {
		return nil, err
	}
	bID := business.BusinessID

	accounts, err := uow.Accounts().ListAccounts(ctx, bID)
	if err != nil {
		return nil, err
	}
	categories, err := uow.Categories().ListCategories(ctx, bID)
	if err != nil {
		return nil, err
	}
	modes, err := uow.PaymentModes().ListPaymentModes(ctx, bID)
	if err != nil {
		return nil, err
	}
	txns, err := uow.Transactions().ListTransactions(ctx, bID, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	transfers, err := uow.FundTransfers().ListFundTransfers(ctx, bID, "")
	if err != nil {
		return nil, err
	}
	logs, err := uow.ActivityLogs().ListActivityLogs(ctx, bID, 0, nil)
	if err != nil {
		return nil, err
	}

	backup := dto.BusinessBackup{
		Business: dto.BackupBusiness{
			ID:        business.BusinessID,
			Name:      business.Name,
			Address:   business.Address,
			Currency:  business.CurrencyCode,
			IsActive:  business.IsActive,
			CreatedAt: business.CreatedAt,
		},
		Accounts:      make([]dto.BackupAccount, 0, len(accounts)),
		Categories:    make([]dto.BackupCategory, 0, len(categories)),
		PaymentModes:  make([]dto.BackupPaymentMode, 0, len(modes)),
		Transactions:  make([]dto.BackupTransaction, 0, len(txns)),
		FundTransfers: make([]dto.BackupTransfer, 0, len(transfers)),
		ActivityLogs:  make([]dto.BackupActivityLog, 0, len(logs)),
		ExportDate:    s.Now(),
	}
	for _, a := range accounts {
		backup.Accounts = append(backup.Accounts, dto.BackupAccount{
			ID:             a.AccountID,
			Name:           a.Name,
			Currency:       a.CurrencyCode,
			OpeningBalance: a.OpeningBalance,
			CurrentBalance: a.CurrentBalance,
			CreatedAt:      a.CreatedAt,
			UpdatedAt:      a.LastUpdatedAt,
		})
	}
	for _, c := range categories {
		backup.Categories = append(backup.Categories, dto.BackupCategory{
			ID: c.CategoryID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt,
		})
	}
	for _, m := range modes {
		backup.PaymentModes = append(backup.PaymentModes, dto.BackupPaymentMode{
			ID: m.PaymentModeID, Name: m.Name, CreatedAt: m.CreatedAt,
		})
	}
	for _, t := range txns {
		backup.Transactions = append(backup.Transactions, dto.BackupTransaction{
			ID:            t.TransactionID,
			Amount:        t.Amount,
			Type:          string(t.Type),
			Notes:         t.Notes,
			Vendor:        t.Vendor,
			Reference:     t.Reference,
			Date:          t.Date,
			CreatedAt:     t.CreatedAt,
			UpdatedAt:     t.LastUpdatedAt,
			AccountID:     t.AccountID,
			CategoryID:    t.CategoryID,
			PaymentModeID: t.PaymentModeID,
		})
	}
	for _, f := range transfers {
		backup.FundTransfers = append(backup.FundTransfers, dto.BackupTransfer{
			ID:            f.FundTransferID,
			Amount:        f.Amount,
			Notes:         f.Notes,
			Date:          f.Date,
			CreatedAt:     f.CreatedAt,
			FromAccountID: f.FromAccountID,
			ToAccountID:   f.ToAccountID,
		})
	}
	for _, l := range logs {
		backup.ActivityLogs = append(backup.ActivityLogs, dto.BackupActivityLog{
			ID: l.ActivityLogID, Action: l.Action, Details: l.Details, Timestamp: l.Timestamp,
		})
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.LogInfo(ctx, "Backup exported",
		slog.String("business_id", bID),
		slog.Int("transactions", len(txns)),
		slog.Int("fund_transfers", len(transfers)))
	return data, nil
}

// decodeBackup rejects snapshots that cannot be restored before any store access.
func decodeBackup(data []byte) (*dto.BusinessBackup, error) {
	var backup dto.BusinessBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, formatError("backup is not valid JSON: %v", err)
	}
	if strings.TrimSpace(backup.Business.Name) == "" {
		return nil, formatError("backup has no business")
	}
	for i, a := range backup.Accounts {
		if code := strings.TrimSpace(a.Currency); code != "" {
			if _, ok := domain.FindCurrency(strings.ToUpper(code)); !ok {
				return nil, formatError("account %d: unsupported currency %q", i, a.Currency)
			}
		}
		if !domain.FitsAmountScale(a.OpeningBalance) {
			return nil, formatError("account %d: opening balance has more than %d decimal places", i, domain.AmountScale)
		}
	}
	if name, ok := firstDuplicate(backup.Categories, func(c dto.BackupCategory) string { return c.Name }); ok {
		return nil, formatError("duplicate category %q", name)
	}
	if name, ok := firstDuplicate(backup.PaymentModes, func(m dto.BackupPaymentMode) string { return m.Name }); ok {
		return nil, formatError("duplicate payment mode %q", name)
	}
	for i, t := range backup.Transactions {
		if _, err := domain.ParseTransactionType(t.Type); err != nil {
			return nil, formatError("transaction %d: %v", i, err)
		}
		if !t.Amount.IsPositive() {
			return nil, formatError("transaction %d: amount must be positive", i)
		}
		if !domain.FitsAmountScale(t.Amount) {
			return nil, formatError("transaction %d: amount has more than %d decimal places", i, domain.AmountScale)
		}
	}
	for i, f := range backup.FundTransfers {
		if !f.Amount.IsPositive() {
			return nil, formatError("fund transfer %d: amount must be positive", i)
		}
		if !domain.FitsAmountScale(f.Amount) {
			return nil, formatError("fund transfer %d: amount has more than %d decimal places", i, domain.AmountScale)
		}
	}
	return &backup, nil
}

// firstDuplicate returns the first name seen twice. Names compare exactly, as the
// per-business unique indexes do.
func firstDuplicate[T any](items []T, name func(T) string) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		n := name(item)
		if _, ok := seen[n]; ok {
			return n, true
		}
		seen[n] = struct{}{}
	}
	return "", false
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC().Truncate(time.Microsecond)
}

// RestoreBackup recreates the snapshot under new identities and makes it the active business.
// Running balances are rebuilt by replaying the restored history. Transfers whose
// other account is gone are not restored, but still count on the surviving side.
func (s *backupService) RestoreBackup(ctx context.Context, sess domain.Session, data []byte) (*domain.RestoreResult, error) {
	backup, err := decodeBackup(data)
	if err != nil {
		s.LogError(ctx, err, "Rejected backup file")
		return nil, err
	}

	now := s.Now()
	user := sess.Username

	currency := strings.ToUpper(strings.TrimSpace(backup.Business.Currency))
	if _, ok := domain.FindCurrency(currency); !ok {
		currency = domain.DefaultCurrencyCode
	}
	business := domain.Business{
		BusinessID:   uuid.NewString(),
		Name:         backup.Business.Name,
		Address:      backup.Business.Address,
		CurrencyCode: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     orNow(backup.Business.CreatedAt, now),
			CreatedBy:     user,
			LastUpdatedAt: now,
			LastUpdatedBy: user,
		},
	}

	accountIDs := make(map[string]string, len(backup.Accounts))
	accounts := make([]domain.Account, 0, len(backup.Accounts))
	for _, a := range backup.Accounts {
		code := strings.ToUpper(strings.TrimSpace(a.Currency))
		if code == "" {
			code = business.CurrencyCode
		}
		acc := domain.Account{
			AccountID:      uuid.NewString(),
			BusinessID:     business.BusinessID,
			Name:           a.Name,
			CurrencyCode:   code,
			OpeningBalance: a.OpeningBalance,
			AuditFields: domain.AuditFields{
				CreatedAt:     orNow(a.CreatedAt, now),
				CreatedBy:     user,
				LastUpdatedAt: now,
				LastUpdatedBy: user,
			},
		}
		accountIDs[a.ID] = acc.AccountID
		accounts = append(accounts, acc)
	}

	categoryIDs := make(map[string]string, len(backup.Categories))
	categories := make([]domain.Category, 0, len(backup.Categories))
	for _, c := range backup.Categories {
		cat := domain.Category{
			CategoryID: uuid.NewString(),
			BusinessID: business.BusinessID,
			Name:       c.Name,
			Color:      c.Color,
			AuditFields: domain.AuditFields{
				CreatedAt: orNow(c.CreatedAt, now), CreatedBy: user, LastUpdatedAt: now, LastUpdatedBy: user,
			},
		}
		categoryIDs[c.ID] = cat.CategoryID
		categories = append(categories, cat)
	}

	modeIDs := make(map[string]string, len(backup.PaymentModes))
	modes := make([]domain.PaymentMode, 0, len(backup.PaymentModes))
	for _, m := range backup.PaymentModes {
		mode := domain.PaymentMode{
			PaymentModeID: uuid.NewString(),
			BusinessID:    business.BusinessID,
			Name:          m.Name,
			AuditFields: domain.AuditFields{
				CreatedAt: orNow(m.CreatedAt, now), CreatedBy: user, LastUpdatedAt: now, LastUpdatedBy: user,
			},
		}
		modeIDs[m.ID] = mode.PaymentModeID
		modes = append(modes, mode)
	}

	txns := make([]domain.Transaction, 0, len(backup.Transactions))
	for _, t := range backup.Transactions {
		accountID, ok := accountIDs[t.AccountID]
		if !ok {
			return nil, formatError("transaction %s references unknown account %s", t.ID, t.AccountID)
		}
		categoryID, ok := categoryIDs[t.CategoryID]
		if !ok {
			return nil, formatError("transaction %s references unknown category %s", t.ID, t.CategoryID)
		}
		typ, _ := domain.ParseTransactionType(t.Type)
		txns = append(txns, domain.Transaction{
			TransactionID: uuid.NewString(),
			BusinessID:    business.BusinessID,
			AccountID:     accountID,
			CategoryID:    categoryID,
			PaymentModeID: modeIDs[t.PaymentModeID], // unknown modes are dropped, the field is optional
			Amount:        t.Amount,
			Type:          typ,
			Notes:         t.Notes,
			Vendor:        t.Vendor,
			Reference:     t.Reference,
			Date:          orNow(t.Date, now),
			AuditFields: domain.AuditFields{
				CreatedAt:     orNow(t.CreatedAt, now),
				CreatedBy:     user,
				LastUpdatedAt: orNow(t.UpdatedAt, now),
				LastUpdatedBy: user,
			},
		})
	}

	result := &domain.RestoreResult{}
	transfers := make([]domain.FundTransfer, 0, len(backup.FundTransfers))
	orphaned := accounting.BalanceChanges{}
	for _, f := range backup.FundTransfers {
		from, okFrom := accountIDs[f.FromAccountID]
		to, okTo := accountIDs[f.ToAccountID]
		if !okFrom || !okTo || from == to {
			result.SkippedTransfers++
			s.LogDebug(ctx, "Skipping orphaned fund transfer", slog.String("fund_transfer_id", f.ID))
			// The surviving side keeps the effect it had when the backup was taken.
			switch {
			case okFrom && !okTo:
				orphaned.Add(from, f.Amount.Neg())
			case okTo && !okFrom:
				orphaned.Add(to, f.Amount)
			}
			continue
		}
		transfers = append(transfers, domain.FundTransfer{
			FundTransferID: uuid.NewString(),
			BusinessID:     business.BusinessID,
			FromAccountID:  from,
			ToAccountID:    to,
			Amount:         f.Amount,
			Notes:          f.Notes,
			Date:           orNow(f.Date, now),
			CreatedAt:      orNow(f.CreatedAt, now),
			CreatedBy:      user,
		})
	}

	balances := accounting.ReplayBalances(accounts, txns, transfers)
	for i := range accounts {
		id := accounts[i].AccountID
		accounts[i].CurrentBalance = balances[id].Add(orphaned[id])
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Businesses().SaveBusiness(ctx, business); err != nil {
		return nil, err
	}
	if err := uow.Businesses().SetActiveBusiness(ctx, business.BusinessID, now); err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if err := uow.Accounts().SaveAccount(ctx, a); err != nil {
			return nil, err
		}
	}
	for _, c := range categories {
		if err := uow.Categories().SaveCategory(ctx, c); err != nil {
			return nil, err
		}
	}
	for _, m := range modes {
		if err := uow.PaymentModes().SavePaymentMode(ctx, m); err != nil {
			return nil, err
		}
	}
	for _, t := range txns {
		if err := uow.Transactions().SaveTransaction(ctx, t); err != nil {
			return nil, err
		}
	}
	for _, f := range transfers {
		if err := uow.FundTransfers().SaveFundTransfer(ctx, f); err != nil {
			return nil, err
		}
	}
	for _, l := range backup.ActivityLogs {
		entry := domain.ActivityLog{
			ActivityLogID: uuid.NewString(),
			BusinessID:    business.BusinessID,
			Action:        l.Action,
			Details:       l.Details,
			Timestamp:     orNow(l.Timestamp, now),
		}
		if err := uow.ActivityLogs().SaveActivityLog(ctx, entry); err != nil {
			return nil, err
		}
	}
	if err := recordActivity(ctx, uow, business.BusinessID, domain.ActionDataRestored,
		"Business data restored from backup", now); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		s.LogError(ctx, err, "Failed to commit restore", slog.String("business_name", business.Name))
		return nil, err
	}

	business.IsActive = true
	result.Business = business
	result.Accounts = len(accounts)
	result.Categories = len(categories)
	result.PaymentModes = len(modes)
	result.Transactions = len(txns)
	result.FundTransfers = len(transfers)
	result.ActivityLogs = len(backup.ActivityLogs)

	s.LogInfo(ctx, "Backup restored",
		slog.String("business_id", business.BusinessID),
		slog.Int("transactions", result.Transactions),
		slog.Int("skipped_transfers", result.SkippedTransfers))
	return result, nil
}

// epochSeconds renders t as fractional seconds since the Unix epoch.
func epochSeconds(t time.Time) json.Number {
	if t.IsZero() {
		return json.Number("0")
	}
	return json.Number(decimal.New(t.UnixMicro(), -6).String())
}

func decimalNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func (s *backupService) ExportShopSnapshot(ctx context.Context, sess domain.Session) ([]byte, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	business, err := activeBusiness(ctx, uow, sess)
	if err != nil {
		return nil, err
	}
	bID := business.BusinessID

	accounts, err := uow.Accounts().ListAccounts(ctx, bID)
	if err != nil {
		return nil, err
	}
	categories, err := uow.Categories().ListCategories(ctx, bID)
	if err != nil {
		return nil, err
	}
	txns, err := uow.Transactions().ListTransactions(ctx, bID, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	employees, err := uow.Employees().ListEmployees(ctx, bID)
	if err != nil {
		return nil, err
	}
	parts, err := uow.Parts().ListParts(ctx, bID)
	if err != nil {
		return nil, err
	}
	users, err := uow.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	accountNames := make(map[string]string, len(accounts))
	snapshot := dto.ShopSnapshot{
		Transactions:   make([]dto.SnapshotTransaction, 0, len(txns)),
		Employees:      make([]dto.SnapshotEmployee, 0, len(employees)),
		Parts:          make([]dto.SnapshotPart, 0, len(parts)),
		Accounts:       make([]dto.SnapshotAccount, 0, len(accounts)),
		Users:          make([]dto.SnapshotUser, 0, len(users)),
		ExportDate:     epochSeconds(s.Now()),
		AppVersion:     ShopSnapshotVersion,
		CompanyName:    business.Name,
		CompanyAddress: business.Address,
	}
	for _, a := range accounts {
		accountNames[a.AccountID] = a.Name
		snapshot.Accounts = append(snapshot.Accounts, dto.SnapshotAccount{ID: a.AccountID, Name: a.Name})
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.CategoryID] = c.Name
	}
	for _, t := range txns {
		snapshot.Transactions = append(snapshot.Transactions, dto.SnapshotTransaction{
			ID:            t.TransactionID,
			Date:          epochSeconds(t.Date),
			Category:      categoryNames[t.CategoryID],
			TransactionID: t.Reference,
			Vendor:        t.Vendor,
			Account:       accountNames[t.AccountID],
			Amount:        decimalNumber(t.Amount),
			Description:   t.Notes,
			Type:          string(t.Type),
			CreatedAt:     epochSeconds(t.CreatedAt),
			CreatedBy:     t.CreatedBy,
		})
	}
	for _, e := range employees {
		visa := json.Number("0")
		if e.VisaExpiry != nil {
			visa = epochSeconds(*e.VisaExpiry)
		}
		snapshot.Employees = append(snapshot.Employees, dto.SnapshotEmployee{
			ID:          e.EmployeeID,
			Name:        e.Name,
			Designation: e.Designation,
			Phone:       e.Phone,
			Email:       e.Email,
			EmiratesID:  e.NationalID,
			JoinDate:    epochSeconds(e.JoinDate),
			Salary:      decimalNumber(e.Salary),
			VisaExpiry:  visa,
		})
	}
	for _, p := range parts {
		snapshot.Parts = append(snapshot.Parts, dto.SnapshotPart{
			ID:         p.PartID,
			PartName:   p.Name,
			PartNumber: p.PartNumber,
			Customer:   p.Customer,
			Vehicle:    p.Vehicle,
			Supplier:   p.Supplier,
			Quantity:   p.Quantity,
			Price:      decimalNumber(p.Price),
		})
	}
	for _, u := range users {
		snapshot.Users = append(snapshot.Users, dto.SnapshotUser{
			ID:          u.UserID,
			Username:    u.Username,
			Role:        string(u.Role),
			HasPassword: u.HasPassword(),
		})
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
