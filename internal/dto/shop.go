package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRequest carries every editable employee field. It is used for create and update.
type EmployeeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone" binding:"required"`
	Salary      decimal.Decimal `json:"salary"`
	Designation string          `json:"designation"`
	Email       string          `json:"email" binding:"omitempty,email"`
	NationalID  string          `json:"nationalID"`
	VisaExpiry  *time.Time      `json:"visaExpiry"`
	JoinDate    time.Time       `json:"joinDate"`
}

// PartRequest carries every editable part field. It is used for create and update.
type PartRequest struct {
	Name       string          `json:"name" binding:"required"`
	PartNumber string          `json:"partNumber"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity" binding:"gte=0"`
	Customer   string          `json:"customer"`
	Vehicle    string          `json:"vehicle"`
	Supplier   string          `json:"supplier"`
}
