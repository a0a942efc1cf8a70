package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/utils/csvline"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CSVDateLayout is the dd-MM-yyyy pattern used by every CSV file.
const CSVDateLayout = "02-01-2006"

var (
	transactionCSVHeader = []string{"Date", "Category", "Account", "Amount", "Type", "Payment Mode", "Notes"}
	employeeCSVHeader    = []string{"Name", "Designation", "Phone", "Email", "Emirates ID", "Join Date", "Salary", "Visa Expiry"}
	partCSVHeader        = []string{"Part Name", "Part Number", "Customer", "Vehicle", "Supplier", "Quantity", "Price"}

	// requiredImportColumns must lead the header of an imported file.
	requiredImportColumns = transactionCSVHeader[:5]
)

type csvService struct {
	BaseService
	store portsrepo.Store
	loc   *time.Location
}

// CSVOption configures the CSV service.
type CSVOption func(*csvService)

// WithCSVLocation sets the zone used to render and parse calendar dates.
func WithCSVLocation(loc *time.Location) CSVOption {
	return func(s *csvService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithCSVClock overrides the clock used for created records.
func WithCSVClock(clock func() time.Time) CSVOption {
	return func(s *csvService) {
		s.Clock = clock
	}
}

// NewCSVService creates the CSV import/export engine.
func NewCSVService(store portsrepo.Store, opts ...CSVOption) portssvc.CSVSvcFacade {
	s := &csvService{store: store, loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// transactionRows holds the rows of one export with display names already resolved.
type transactionRows struct {
	business     *domain.Business
	transactions []domain.Transaction
	accounts     map[string]string
	categories   map[string]string
	paymentModes map[string]string
}

// loadTransactionRows reads the business ledger oldest first.
func loadTransactionRows(ctx context.Context, store portsrepo.Store, sess domain.Session, rng *domain.DateRange) (*transactionRows, error) {
	if !sess.HasBusiness() {
		return nil, apperrors.ErrNoActiveBusiness
	}

	uow, err := store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	business, err := uow.Businesses().FindBusinessByID(ctx, sess.BusinessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoActiveBusiness
		}
		return nil, err
	}

	var filter domain.TransactionFilter
	if rng != nil {
		filter.Range = *rng
	}
	txns, err := uow.Transactions().ListTransactions(ctx, sess.BusinessID, filter)
	if err != nil {
		return nil, err
	}
	// listings are newest first
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}

	rows := &transactionRows{
		business:     business,
		transactions: txns,
		accounts:     map[string]string{},
		categories:   map[string]string{},
		paymentModes: map[string]string{},
	}

	accounts, err := uow.Accounts().ListAccounts(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		rows.accounts[a.AccountID] = a.Name
	}
	categories, err := uow.Categories().ListCategories(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		rows.categories[c.CategoryID] = c.Name
	}
	modes, err := uow.PaymentModes().ListPaymentModes(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}
	for _, m := range modes {
		rows.paymentModes[m.PaymentModeID] = m.Name
	}
	return rows, nil
}

// flattenLine replaces line breaks so a field never spans lines.
func flattenLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func (s *csvService) ExportTransactionsCSV(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error) {
	rows, err := loadTransactionRows(ctx, s.store, sess, rng)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(transactionCSVHeader); err != nil {
		return nil, err
	}
	for _, t := range rows.transactions {
		record := []string{
			t.Date.In(s.loc).Format(CSVDateLayout),
			flattenLine(rows.categories[t.CategoryID]),
			flattenLine(rows.accounts[t.AccountID]),
			t.Amount.String(),
			string(t.Type),
			flattenLine(rows.paymentModes[t.PaymentModeID]),
			flattenLine(t.Notes),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write transactions csv: %w", err)
	}

	s.LogInfo(ctx, "Transactions exported to CSV", slog.Int("rows", len(rows.transactions)))
	return buf.Bytes(), nil
}

// parsedRow is one validated import line.
type parsedRow struct {
	date        time.Time
	category    string
	account     string
	amount      decimal.Decimal
	typ         domain.TransactionType
	paymentMode string
	notes       string
}

func (s *csvService) parseRow(fields []string) (*parsedRow, error) {
	if len(fields) < len(requiredImportColumns) {
		return nil, apperrors.ErrInsufficientData
	}
	date, err := time.ParseInLocation(CSVDateLayout, strings.TrimSpace(fields[0]), s.loc)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil || !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	typ, err := domain.ParseTransactionType(fields[4])
	if err != nil {
		return nil, apperrors.ErrInvalidType
	}

	row := &parsedRow{
		date:     date,
		category: strings.TrimSpace(fields[1]),
		account:  strings.TrimSpace(fields[2]),
		amount:   amount,
		typ:      typ,
	}
	if len(fields) > 5 {
		row.paymentMode = strings.TrimSpace(fields[5])
	}
	if len(fields) > 6 {
		row.notes = fields[6]
	}
	return row, nil
}

// ImportTransactionsCSV commits every row on its own. A failing row is reported
// and skipped; rows already imported stay.
func (s *csvService) ImportTransactionsCSV(ctx context.Context, sess domain.Session, content string) (*domain.ImportResult, error) {
	if !sess.HasBusiness() {
		return nil, apperrors.ErrNoActiveBusiness
	}

	lines := csvline.Lines(content)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: No data found in CSV", apperrors.ErrFormat)
	}
	if !csvline.HasPrefixColumns(csvline.Split(lines[0]), requiredImportColumns) {
		return nil, fmt.Errorf("%w: Invalid CSV headers. Expected: %s", apperrors.ErrHeaderMismatch, strings.Join(transactionCSVHeader, ","))
	}

	currency, err := s.businessCurrency(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{Errors: []string{}}
	for i, line := range lines[1:] {
		rowNum := i + 2
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, err := s.parseRow(csvline.Split(line))
		if err != nil {
			result.AddRowError(rowNum, err)
			continue
		}
		if err := s.importRow(ctx, sess, currency, row); err != nil {
			s.LogError(ctx, err, "Failed to import CSV row", slog.Int("row", rowNum))
			result.AddRowError(rowNum, apperrors.ErrPersist)
			continue
		}
		result.ImportedCount++
	}
	result.Success = result.ImportedCount > 0

	if result.ImportedCount > 0 {
		if err := s.logImport(ctx, sess.BusinessID, result); err != nil {
			s.LogError(ctx, err, "Failed to record import activity")
		}
	}

	s.LogInfo(ctx, "CSV import finished",
		slog.Int("imported", result.ImportedCount),
		slog.Int("skipped", result.SkippedCount))
	return result, nil
}

func (s *csvService) businessCurrency(ctx context.Context, businessID string) (string, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer uow.Rollback(ctx)

	business, err := uow.Businesses().FindBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrNoActiveBusiness
		}
		return "", err
	}
	if business.CurrencyCode == "" {
		return domain.DefaultCurrencyCode, nil
	}
	return business.CurrencyCode, nil
}

// importRow resolves names and creates the transaction in one unit of work, so a
// failed row leaves no auto-created records behind.
func (s *csvService) importRow(ctx context.Context, sess domain.Session, currency string, row *parsedRow) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	now := s.Now()
	category, err := findOrCreateCategory(ctx, uow, sess, row.category, now)
	if err != nil {
		return err
	}
	account, err := findOrCreateAccount(ctx, uow, sess, row.account, currency, now)
	if err != nil {
		return err
	}
	var paymentModeID string
	if row.paymentMode != "" {
		mode, err := findOrCreatePaymentMode(ctx, uow, sess, row.paymentMode, now)
		if err != nil {
			return err
		}
		paymentModeID = mode.PaymentModeID
	}

	in := transactionInput{
		Amount:        row.amount,
		Type:          row.typ,
		AccountID:     account.AccountID,
		CategoryID:    category.CategoryID,
		PaymentModeID: paymentModeID,
		Notes:         row.notes,
		Date:          row.date,
	}
	if _, err := createTransactionTx(ctx, uow, sess, in, now); err != nil {
		return err
	}
	return commit(ctx, uow)
}

func (s *csvService) logImport(ctx context.Context, businessID string, result *domain.ImportResult) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	details := fmt.Sprintf("Imported %d transaction(s), skipped %d", result.ImportedCount, result.SkippedCount)
	if err := recordActivity(ctx, uow, businessID, domain.ActionTransactionsImported, details, s.Now()); err != nil {
		return err
	}
	return commit(ctx, uow)
}

func findOrCreateCategory(ctx context.Context, uow portsrepo.UnitOfWork, sess domain.Session, name string, now time.Time) (*domain.Category, error) {
	found, err := uow.Categories().FindCategoryByName(ctx, sess.BusinessID, name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		BusinessID:  sess.BusinessID,
		Name:        name,
		AuditFields: newAudit(sess.Username, now),
	}
	if err := uow.Categories().SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func findOrCreateAccount(ctx context.Context, uow portsrepo.UnitOfWork, sess domain.Session, name, currency string, now time.Time) (*domain.Account, error) {
	found, err := uow.Accounts().FindAccountByName(ctx, sess.BusinessID, name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	account := domain.Account{
		AccountID:      uuid.NewString(),
		BusinessID:     sess.BusinessID,
		Name:           name,
		CurrencyCode:   currency,
		OpeningBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		AuditFields:    newAudit(sess.Username, now),
	}
	if err := uow.Accounts().SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func findOrCreatePaymentMode(ctx context.Context, uow portsrepo.UnitOfWork, sess domain.Session, name string, now time.Time) (*domain.PaymentMode, error) {
	found, err := uow.PaymentModes().FindPaymentModeByName(ctx, sess.BusinessID, name)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	mode := domain.PaymentMode{
		PaymentModeID: uuid.NewString(),
		BusinessID:    sess.BusinessID,
		Name:          name,
		AuditFields:   newAudit(sess.Username, now),
	}
	if err := uow.PaymentModes().SavePaymentMode(ctx, mode); err != nil {
		return nil, err
	}
	return &mode, nil
}

func (s *csvService) ExportEmployeesCSV(ctx context.Context, sess domain.Session) ([]byte, error) {
	if !sess.HasBusiness() {
		return nil, apperrors.ErrNoActiveBusiness
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	employees, err := uow.Employees().ListEmployees(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(employees)+1)
	records = append(records, employeeCSVHeader)
	for _, e := range employees {
		visa := ""
		if e.VisaExpiry != nil {
			visa = e.VisaExpiry.In(s.loc).Format(CSVDateLayout)
		}
		records = append(records, []string{
			flattenLine(e.Name),
			flattenLine(e.Designation),
			e.Phone,
			e.Email,
			e.NationalID,
			e.JoinDate.In(s.loc).Format(CSVDateLayout),
			e.Salary.String(),
			visa,
		})
	}
	return writeCSV(records)
}

func (s *csvService) ExportPartsCSV(ctx context.Context, sess domain.Session) ([]byte, error) {
	if !sess.HasBusiness() {
		return nil, apperrors.ErrNoActiveBusiness
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	parts, err := uow.Parts().ListParts(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(parts)+1)
	records = append(records, partCSVHeader)
	for _, p := range parts {
		records = append(records, []string{
			flattenLine(p.Name),
			flattenLine(p.PartNumber),
			flattenLine(p.Customer),
			flattenLine(p.Vehicle),
			flattenLine(p.Supplier),
			strconv.Itoa(p.Quantity),
			p.Price.String(),
		})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
