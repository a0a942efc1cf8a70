package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/utils"
	"github.com/SscSPs/business_tracker/internal/utils/accounting"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet      = "Transactions"
	reportDateLayout = "2006-01-02"
)

var reportColumns = []string{"Date", "Type", "Category", "Account", "Payment Mode", "Amount", "Vendor", "Reference", "Notes"}

type reportService struct {
	BaseService
	store portsrepo.Store
	loc   *time.Location
}

// NewReportService creates the XLSX and PDF renderer. A nil loc means UTC.
func NewReportService(store portsrepo.Store, loc *time.Location) portssvc.ReportSvcFacade {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{store: store, loc: loc}
}

func (s *reportService) ExportTransactionsXLSX(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error) {
	rows, err := loadTransactionRows(ctx, s.store, sess, rng)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(reportColumns))
	for i, c := range reportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(reportColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(reportSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	for i, t := range rows.transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		record := []interface{}{
			t.Date.In(s.loc).Format(reportDateLayout),
			string(t.Type),
			rows.categories[t.CategoryID],
			rows.accounts[t.AccountID],
			rows.paymentModes[t.PaymentModeID],
			t.SignedAmount().InexactFloat64(),
			t.Vendor,
			t.Reference,
			t.Notes,
		}
		if err := f.SetSheetRow(reportSheet, cell, &record); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(reportSheet, "A", lastCol, 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.LogInfo(ctx, "Transactions exported to XLSX", slog.Int("rows", len(rows.transactions)))
	return buf.Bytes(), nil
}

// statementAmount uses the ISO code rather than the symbol, since the core PDF fonts are Latin-1 only.
func statementAmount(amount decimal.Decimal, code string) string {
	c, ok := domain.FindCurrency(code)
	if !ok {
		return amount.StringFixed(2)
	}
	c.Symbol = ""
	return c.CurrencyCode + " " + utils.FormatAmount(amount, c)
}

func trimTo(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-3]) + "..."
}

func (s *reportService) StatementPDF(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error) {
	rows, err := loadTransactionRows(ctx, s.store, sess, rng)
	if err != nil {
		return nil, err
	}
	accounts, err := s.listAccounts(ctx, sess.BusinessID)
	if err != nil {
		return nil, err
	}

	currency := rows.business.CurrencyCode
	income, expense, net := accounting.NetIncome(rows.transactions)

	period := "All time"
	if rng != nil {
		from, to := "beginning", "today"
		if !rng.From.IsZero() {
			from = rng.From.In(s.loc).Format(reportDateLayout)
		}
		if !rng.To.IsZero() {
			// To is exclusive
			to = rng.To.Add(-time.Nanosecond).In(s.loc).Format(reportDateLayout)
		}
		period = from + " to " + to
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(rows.business.Name+" Statement"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	if rows.business.Address != "" {
		pdf.Cell(0, 6, tr(rows.business.Address))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, "Period: "+period)
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 10)
	sumW := []float64{45.5, 45.5, 45.5, 45.5}
	pdf.CellFormat(sumW[0], 9, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 9, "Expense", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 9, "Net", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[3], 9, "Total Balance", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(sumW[0], 9, statementAmount(income, currency), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 9, statementAmount(expense, currency), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 9, statementAmount(net, currency), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[3], 9, statementAmount(totalBalance(accounts), currency), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{24, 20, 34, 34, 70}
	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(colW[0], 7, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 7, "TYPE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[2], 7, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 7, "ACCOUNT", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[4], 7, "AMOUNT / NOTES", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	tableHeader()

	for _, t := range rows.transactions {
		if pdf.GetY() > 275 {
			pdf.AddPage()
			tableHeader()
		}
		detail := statementAmount(t.SignedAmount(), currency)
		if t.Notes != "" {
			detail += "  " + t.Notes
		}
		pdf.CellFormat(colW[0], 7, t.Date.In(s.loc).Format(reportDateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 7, strings.ToUpper(string(t.Type)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 7, tr(trimTo(rows.categories[t.CategoryID], 20)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 7, tr(trimTo(rows.accounts[t.AccountID], 20)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 7, tr(trimTo(detail, 44)), "1", 1, "L", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+s.Now().In(s.loc).Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf build failed: %w", err)
	}

	s.LogInfo(ctx, "Statement rendered", slog.Int("rows", len(rows.transactions)), slog.Int("pages", pdf.PageCount()))
	return buf.Bytes(), nil
}

func (s *reportService) listAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Accounts().ListAccounts(ctx, businessID)
}
