package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BusinessBackup is the primary backup file. Decimals are encoded as exact strings
// and instants as RFC 3339 with nanoseconds.
type BusinessBackup struct {
	Business      BackupBusiness      `json:"business"`
	Accounts      []BackupAccount     `json:"accounts"`
	Categories    []BackupCategory    `json:"categories"`
	PaymentModes  []BackupPaymentMode `json:"paymentModes"`
	Transactions  []BackupTransaction `json:"transactions"`
	FundTransfers []BackupTransfer    `json:"fundTransfers"`
	ActivityLogs  []BackupActivityLog `json:"activityLogs"`
	ExportDate    time.Time           `json:"exportDate"`
}

type BackupBusiness struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type BackupAccount struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type BackupCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type BackupPaymentMode struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type BackupTransaction struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Notes         string          `json:"notes"`
	Vendor        string          `json:"vendor"`
	Reference     string          `json:"reference"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	AccountID     string          `json:"accountId"`
	CategoryID    string          `json:"categoryId"`
	PaymentModeID string          `json:"paymentModeId"`
}

type BackupTransfer struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
}

type BackupActivityLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// ShopSnapshot is the flat inspection export. Instants are epoch seconds and
// money is a JSON number written from the exact decimal text.
type ShopSnapshot struct {
	Transactions   []SnapshotTransaction `json:"transactions"`
	Employees      []SnapshotEmployee    `json:"employees"`
	Parts          []SnapshotPart        `json:"parts"`
	Accounts       []SnapshotAccount     `json:"accounts"`
	Users          []SnapshotUser        `json:"users"`
	ExportDate     json.Number           `json:"exportDate"`
	AppVersion     string                `json:"appVersion"`
	CompanyName    string                `json:"companyName"`
	CompanyAddress string                `json:"companyAddress"`
}

type SnapshotTransaction struct {
	ID            string      `json:"id"`
	Date          json.Number `json:"date"`
	Category      string      `json:"category"`
	TransactionID string      `json:"transactionId"`
	Vendor        string      `json:"vendor"`
	Account       string      `json:"account"`
	Amount        json.Number `json:"amount"`
	Description   string      `json:"description"`
	Type          string      `json:"type"`
	CreatedAt     json.Number `json:"createdAt"`
	CreatedBy     string      `json:"createdBy"`
}

type SnapshotEmployee struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Designation string      `json:"designation"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	EmiratesID  string      `json:"emiratesId"`
	JoinDate    json.Number `json:"joinDate"`
	Salary      json.Number `json:"salary"`
	VisaExpiry  json.Number `json:"visaExpiry"` // 0 when unknown
}

type SnapshotPart struct {
	ID         string      `json:"id"`
	PartName   string      `json:"partName"`
	PartNumber string      `json:"partNumber"`
	Customer   string      `json:"customer"`
	Vehicle    string      `json:"vehicle"`
	Supplier   string      `json:"supplier"`
	Quantity   int         `json:"quantity"`
	Price      json.Number `json:"price"`
}

type SnapshotAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SnapshotUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	HasPassword bool   `json:"hasPassword"`
}
