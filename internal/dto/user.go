package dto

import (
	"time"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// LoginRequest holds local credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=64"`
	Password string      `json:"password" binding:"required,min=4"`
	Role     domain.Role `json:"role" binding:"required,oneof=admin user"`
}

// ChangePasswordRequest replaces the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=4"`
}

// UserResponse never exposes the credential.
type UserResponse struct {
	UserID      string      `json:"userID"`
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	HasPassword bool        `json:"hasPassword"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Username:    u.Username,
		Role:        u.Role,
		HasPassword: u.HasPassword(),
		CreatedAt:   u.CreatedAt,
	}
}

// ToListUserResponse converts users to DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
