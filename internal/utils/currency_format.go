package utils

import (
	"strings"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Precision))
}

// FormatAmount renders an amount for display: sign, symbol, grouped digits.
// Example: -1234.5 with USD returns "-$1,234.50"
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	text := amount.Abs().StringFixed(int32(currency.Precision))
	intPart, fracPart, hasFrac := strings.Cut(text, ".")

	var b strings.Builder
	if amount.Round(int32(currency.Precision)).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(currency.Symbol)
	b.WriteString(groupThousands(intPart))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatAmountByCode formats using the catalog entry for code, falling back to
// the plain fixed-point value when the code is unknown.
func FormatAmountByCode(amount decimal.Decimal, code string) string {
	c, ok := domain.FindCurrency(code)
	if !ok {
		return amount.StringFixed(2)
	}
	return FormatAmount(amount, c)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
