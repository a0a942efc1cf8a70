package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary aggregates the ledger of a business over an optional range.
type Summary struct {
	Range        *DateRange      `json:"range,omitempty"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// RowError is a single skipped CSV row. Row uses file line numbers, header is row 1.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, rowMessage(e.Err))
}

func (e RowError) Unwrap() error {
	return e.Err
}

// rowMessage capitalises the first letter of the cause, matching the import report wording.
func rowMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	if c := msg[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + msg[1:]
	}
	return msg
}

// ImportResult reports a CSV import. Success is true when at least one row was imported.
type ImportResult struct {
	Success       bool       `json:"success"`
	ImportedCount int        `json:"importedCount"`
	SkippedCount  int        `json:"skippedCount"`
	Errors        []string   `json:"errors"`
	RowErrors     []RowError `json:"-"`
}

// AddRowError records a skipped row.
func (r *ImportResult) AddRowError(row int, err error) {
	re := RowError{Row: row, Err: err}
	r.RowErrors = append(r.RowErrors, re)
	r.Errors = append(r.Errors, re.Error())
	r.SkippedCount++
}

// RestoreResult reports what a backup restore recreated.
type RestoreResult struct {
	Business         Business `json:"business"`
	Accounts         int      `json:"accounts"`
	Categories       int      `json:"categories"`
	PaymentModes     int      `json:"paymentModes"`
	Transactions     int      `json:"transactions"`
	FundTransfers    int      `json:"fundTransfers"`
	ActivityLogs     int      `json:"activityLogs"`
	SkippedTransfers int      `json:"skippedTransfers"`
}
