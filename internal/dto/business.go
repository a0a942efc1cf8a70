package dto

import (
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// CreateBusinessRequest defines the data needed to create a new business.
type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// UpdateBusinessRequest defines the data allowed for updating a business.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBusinessRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	CurrencyCode *string `json:"currencyCode" binding:"omitempty,len=3"`
}

// BusinessResponse defines the data returned for a business.
type BusinessResponse struct {
	BusinessID    string    `json:"businessID"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	CurrencyCode  string    `json:"currencyCode"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToBusinessResponse converts a domain.Business to BusinessResponse DTO
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:    b.BusinessID,
		Name:          b.Name,
		Address:       b.Address,
		CurrencyCode:  b.CurrencyCode,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBusinessResponse converts a slice of domain.Business to BusinessResponse DTOs
func ToListBusinessResponse(businesses []domain.Business) []BusinessResponse {
	res := make([]BusinessResponse, len(businesses))
	for i := range businesses {
		res[i] = ToBusinessResponse(&businesses[i])
	}
	return res
}
