package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a money container owned by a Business.
// CurrentBalance = OpeningBalance + signed transactions + signed transfers, kept incrementally.
type Account struct {
	AccountID      string          `json:"accountID"`
	BusinessID     string          `json:"businessID"`
	Name           string          `json:"name"`
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}
