package dto

import (
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record income or expense.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	AccountID     string                 `json:"accountID" binding:"required"`
	CategoryID    string                 `json:"categoryID" binding:"required"`
	PaymentModeID string                 `json:"paymentModeID"`
	Notes         string                 `json:"notes"`
	Vendor        string                 `json:"vendor"`
	Reference     string                 `json:"reference"`
	Date          time.Time              `json:"date"` // zero means now
}

// UpdateTransactionRequest replaces every editable field of a transaction.
type UpdateTransactionRequest struct {
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	AccountID     string                 `json:"accountID" binding:"required"`
	CategoryID    string                 `json:"categoryID" binding:"required"`
	PaymentModeID string                 `json:"paymentModeID"`
	Notes         string                 `json:"notes"`
	Vendor        string                 `json:"vendor"`
	Reference     string                 `json:"reference"`
	Date          time.Time              `json:"date"` // zero keeps the current date
}

// DateRangeParams are inclusive calendar days from the query string.
// The handler turns To into an exclusive bound.
type DateRangeParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsParams are the query parameters of the transaction listing.
type ListTransactionsParams struct {
	DateRangeParams
	AccountID     string `form:"accountId"`
	CategoryID    string `form:"categoryId"`
	PaymentModeID string `form:"paymentModeId"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	CategoryID    string                 `json:"categoryID"`
	PaymentModeID string                 `json:"paymentModeID,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Notes         string                 `json:"notes"`
	Vendor        string                 `json:"vendor,omitempty"`
	Reference     string                 `json:"reference,omitempty"`
	Date          time.Time              `json:"date"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		PaymentModeID: t.PaymentModeID,
		Amount:        t.Amount,
		Type:          t.Type,
		Notes:         t.Notes,
		Vendor:        t.Vendor,
		Reference:     t.Reference,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts transactions to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
