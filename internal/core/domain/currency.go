package domain

import "strings"

// Currency is an entry in the static catalog of supported currencies.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // display decimals
}

// DefaultCurrencyCode is used when neither the request nor the business names one.
const DefaultCurrencyCode = "USD"

var currencies = []Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	{CurrencyCode: "GBP", Symbol: "£", Name: "British Pound", Precision: 2},
	{CurrencyCode: "AED", Symbol: "د.إ", Name: "UAE Dirham", Precision: 2},
	{CurrencyCode: "SAR", Symbol: "ر.س", Name: "Saudi Riyal", Precision: 2},
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2},
	{CurrencyCode: "CAD", Symbol: "C$", Name: "Canadian Dollar", Precision: 2},
	{CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar", Precision: 2},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", Precision: 2},
}

// SupportedCurrencies returns a copy of the catalog in display order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// FindCurrency looks a currency up by code, ignoring case.
func FindCurrency(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencies {
		if c.CurrencyCode == code {
			return c, true
		}
	}
	return Currency{}, false
}
