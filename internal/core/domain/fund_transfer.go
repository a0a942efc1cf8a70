package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundTransfer moves money between two accounts of the same business.
// BusinessID is kept on the record so a transfer stays scoped after one of its accounts is deleted.
type FundTransfer struct {
	FundTransferID string          `json:"fundTransferID"`
	BusinessID     string          `json:"businessID"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID"`
	Amount         decimal.Decimal `json:"amount"`
	Notes          string          `json:"notes"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// Touches reports whether the transfer moves money in or out of accountID.
func (f FundTransfer) Touches(accountID string) bool {
	return f.FromAccountID == accountID || f.ToAccountID == accountID
}
