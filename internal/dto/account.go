package dto

import (
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// An empty CurrencyCode falls back to the business currency.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	CurrencyCode   string          `json:"currencyCode" binding:"omitempty,len=3"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name           *string          `json:"name"`
	CurrencyCode   *string          `json:"currencyCode" binding:"omitempty,len=3"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"` // re-bases the running balance by the difference
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		CurrencyCode:   acc.CurrencyCode,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: acc.CurrentBalance,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// TransferFundsRequest moves money between two accounts of the active business.
type TransferFundsRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes"`
	Date          time.Time       `json:"date"` // zero means now
}

// FundTransferResponse defines the data returned for a transfer.
type FundTransferResponse struct {
	FundTransferID string          `json:"fundTransferID"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID"`
	Amount         decimal.Decimal `json:"amount"`
	Notes          string          `json:"notes"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToFundTransferResponse converts a domain.FundTransfer to its DTO
func ToFundTransferResponse(f *domain.FundTransfer) FundTransferResponse {
	return FundTransferResponse{
		FundTransferID: f.FundTransferID,
		FromAccountID:  f.FromAccountID,
		ToAccountID:    f.ToAccountID,
		Amount:         f.Amount,
		Notes:          f.Notes,
		Date:           f.Date,
		CreatedAt:      f.CreatedAt,
	}
}

// ToListFundTransferResponse converts transfers to DTOs
func ToListFundTransferResponse(transfers []domain.FundTransfer) []FundTransferResponse {
	res := make([]FundTransferResponse, len(transfers))
	for i := range transfers {
		res[i] = ToFundTransferResponse(&transfers[i])
	}
	return res
}

// TotalBalanceResponse is the sum of all running balances of the business.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	CurrencyCode string          `json:"currencyCode"`
	Formatted    string          `json:"formatted"`
}
