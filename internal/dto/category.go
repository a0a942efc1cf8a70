package dto

import "github.com/SscSPs/business_tracker/internal/core/domain"

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// CreatePaymentModeRequest defines the data needed to create a payment mode.
type CreatePaymentModeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
}

// PaymentModeResponse defines the data returned for a payment mode.
type PaymentModeResponse struct {
	PaymentModeID string `json:"paymentModeID"`
	Name          string `json:"name"`
}

func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Color: c.Color}
	}
	return res
}

func ToListPaymentModeResponse(modes []domain.PaymentMode) []PaymentModeResponse {
	res := make([]PaymentModeResponse, len(modes))
	for i, m := range modes {
		res[i] = PaymentModeResponse{PaymentModeID: m.PaymentModeID, Name: m.Name}
	}
	return res
}
