// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"inventory/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// PasswordResetInput names the account asking for a reset link.
type PasswordResetInput struct {
	Email string
}

// ChangePasswordInput carries the reset token and the new password.
type ChangePasswordInput struct {
	UserID   uuid.UUID
	Password string
	Token    string
}

// --- Output DTOs ---

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	Token string
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64
	User      *entity.User
}

// AuthUsecase defines the account and session operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	RequestPasswordReset(ctx context.Context, input *PasswordResetInput) error
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// Authenticate resolves a session token to its user.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
