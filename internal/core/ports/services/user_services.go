package services

import (
	"context"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/dto"
)

// UserSvcFacade handles user registration and authentication.
type UserSvcFacade interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies email/password credentials and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// FindUserByID retrieves a specific user.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}
