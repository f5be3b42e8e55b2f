package dto

import (
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
)

// RegisterUserRequest defines the payload for user registration.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID          string    `json:"userID"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	DefaultTenantID *string   `json:"defaultTenantID,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain User to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:          u.UserID,
		Email:           u.Email,
		Name:            u.Name,
		DefaultTenantID: u.DefaultTenantID,
		CreatedAt:       u.CreatedAt,
	}
}
