package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is income or expense.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType matches the token case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// AmountScale is the number of decimal places every stored amount keeps.
const AmountScale = 4

// FitsAmountScale reports whether d has no significant digits past AmountScale.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// IsValid reports whether t is one of the known types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is a single income or expense against one account.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	BusinessID    string          `json:"businessID"`
	AccountID     string          `json:"accountID"`
	CategoryID    string          `json:"categoryID"`
	PaymentModeID string          `json:"paymentModeID"` // optional
	Amount        decimal.Decimal `json:"amount"`        // always positive
	Type          TransactionType `json:"type"`
	Notes         string          `json:"notes"`
	Vendor        string          `json:"vendor"`
	Reference     string          `json:"reference"`
	Date          time.Time       `json:"date"` // user chosen, distinct from CreatedAt
	AuditFields
}

// SignedAmount is the effect of the transaction on its account balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	return SignedAmount(t.Amount, t.Type)
}

// SignedAmount returns +amount for income and -amount for expense.
func SignedAmount(amount decimal.Decimal, typ TransactionType) decimal.Decimal {
	if typ == Expense {
		return amount.Neg()
	}
	return amount
}

// TransactionFilter narrows ListTransactions. Empty fields match everything.
type TransactionFilter struct {
	Range         DateRange
	AccountID     string
	CategoryID    string
	PaymentModeID string
}

// Matches reports whether txn passes the filter.
func (f TransactionFilter) Matches(txn Transaction) bool {
	if f.AccountID != "" && txn.AccountID != f.AccountID {
		return false
	}
	if f.CategoryID != "" && txn.CategoryID != f.CategoryID {
		return false
	}
	if f.PaymentModeID != "" && txn.PaymentModeID != f.PaymentModeID {
		return false
	}
	return f.Range.Contains(txn.Date)
}
