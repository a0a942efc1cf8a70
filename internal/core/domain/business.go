package domain

// Business is the top-level owner of every ledger record.
// At most one Business is active across the whole store.
type Business struct {
	BusinessID   string `json:"businessID"`
	Name         string `json:"name"`
	Address      string `json:"address"` // optional
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// DefaultCategoryNames are seeded into every new business.
var DefaultCategoryNames = []string{"Sales", "Purchase", "Salary", "Rent", "Fuel", "Maintenance", "Other"}

// DefaultPaymentModeNames are seeded into every new business.
var DefaultPaymentModeNames = []string{"Cash", "Bank Transfer", "Credit Card", "Debit Card", "Cheque"}
