package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a member of staff on the shop payroll.
type Employee struct {
	EmployeeID  string          `json:"employeeID"`
	BusinessID  string          `json:"businessID"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Salary      decimal.Decimal `json:"salary"`
	Designation string          `json:"designation"`
	Email       string          `json:"email"`
	NationalID  string          `json:"nationalID"`
	VisaExpiry  *time.Time      `json:"visaExpiry,omitempty"`
	JoinDate    time.Time       `json:"joinDate"`
	AuditFields
}

// Part is a stock item used on customer vehicles.
type Part struct {
	PartID     string          `json:"partID"`
	BusinessID string          `json:"businessID"`
	Name       string          `json:"name"`
	PartNumber string          `json:"partNumber"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Customer   string          `json:"customer"`
	Vehicle    string          `json:"vehicle"`
	Supplier   string          `json:"supplier"`
	AuditFields
}
