package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want string
	}{
		{name: "income adds", txn: domain.Transaction{Amount: decimal.RequireFromString("500.00"), Type: domain.Income}, want: "500"},
		{name: "expense subtracts", txn: domain.Transaction{Amount: decimal.RequireFromString("12.34"), Type: domain.Expense}, want: "-12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(tt.txn.SignedAmount()))
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.TransactionType
		wantErr bool
	}{
		{in: "income", want: domain.Income},
		{in: "EXPENSE", want: domain.Expense},
		{in: " Income ", want: domain.Income},
		{in: "transfer", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseTransactionType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	r := domain.DateRange{From: jan, To: feb}

	assert.True(t, r.Contains(jan), "lower bound is inclusive")
	assert.True(t, r.Contains(feb.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(feb), "upper bound is exclusive")
	assert.False(t, r.Contains(jan.Add(-time.Second)))
	assert.True(t, domain.DateRange{}.Contains(jan), "empty range is all time")
	assert.True(t, domain.DateRange{From: jan}.Contains(feb.AddDate(5, 0, 0)))
}

func TestTransactionFilter_Matches(t *testing.T) {
	txn := domain.Transaction{AccountID: "a1", CategoryID: "c1", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}

	assert.True(t, domain.TransactionFilter{}.Matches(txn))
	assert.True(t, domain.TransactionFilter{AccountID: "a1", CategoryID: "c1"}.Matches(txn))
	assert.False(t, domain.TransactionFilter{AccountID: "a2"}.Matches(txn))
	assert.False(t, domain.TransactionFilter{CategoryID: "c2"}.Matches(txn))
	assert.False(t, domain.TransactionFilter{Range: domain.DateRange{To: txn.Date}}.Matches(txn))
}

func TestFitsAmountScale(t *testing.T) {
	tests := map[string]bool{
		"12.3456":    true,
		"12.34560":   true,
		"-0.0001":    true,
		"100":        true,
		"12.34567":   false,
		"0.00001":    false,
		"1.23450001": false,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, domain.FitsAmountScale(decimal.RequireFromString(in)))
		})
	}
}
