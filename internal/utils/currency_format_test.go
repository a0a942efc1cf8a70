package utils

import (
	"testing"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	usd, _ := domain.FindCurrency("USD")
	jpy, _ := domain.FindCurrency("JPY")

	tests := []struct {
		name     string
		amount   string
		currency domain.Currency
		want     string
	}{
		{name: "small", amount: "12.3456", currency: usd, want: "$12.35"},
		{name: "grouped", amount: "1234567.5", currency: usd, want: "$1,234,567.50"},
		{name: "negative", amount: "-1234.5", currency: usd, want: "-$1,234.50"},
		{name: "exact thousand", amount: "1000", currency: usd, want: "$1,000.00"},
		{name: "no decimals", amount: "98765.4", currency: jpy, want: "¥98,765"},
		{name: "rounds to zero", amount: "-0.001", currency: usd, want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormatWithCurrencyPrecision(t *testing.T) {
	usd, _ := domain.FindCurrency("USD")
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(decimal.RequireFromString("12.3456"), usd))
	assert.Equal(t, "7.00", FormatWithCurrencyPrecision(decimal.NewFromInt(7), usd))
	assert.Equal(t, "7.00", FormatAmountByCode(decimal.NewFromInt(7), "XYZ"))
}
