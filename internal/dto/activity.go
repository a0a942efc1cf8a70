package dto

import "github.com/SscSPs/business_tracker/internal/core/domain"

// ListActivityParams are the query parameters of the activity feed.
type ListActivityParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListActivityResponse is one page of the activity feed, newest first.
type ListActivityResponse struct {
	Items     []domain.ActivityLog `json:"items"`
	NextToken *string              `json:"nextToken,omitempty"`
}
