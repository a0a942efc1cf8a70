package domain

// Category groups transactions, e.g. "Rent" or "Fuel".
type Category struct {
	CategoryID string `json:"categoryID"`
	BusinessID string `json:"businessID"`
	Name       string `json:"name"`
	Color      string `json:"color"` // optional display tag
	AuditFields
}

// PaymentMode records how money moved, e.g. "Cash" or "Cheque".
type PaymentMode struct {
	PaymentModeID string `json:"paymentModeID"`
	BusinessID    string `json:"businessID"`
	Name          string `json:"name"`
	AuditFields
}
