// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"passport/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterAccountInput defines the data required to register a new account.
type RegisterAccountInput struct {
	Name     string
	Email    string
	Password string
}

// ResetPasswordInput defines the data required to change an account's password.
type ResetPasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account and dispatches a verification email.
	Register(ctx context.Context, input RegisterAccountInput) (*entity.Account, error)
	// VerifyEmail consumes a url-safe verification token and marks the
	// matching account as verified.
	VerifyEmail(ctx context.Context, token string) error
	// ResetPassword changes the password of an authenticated account after
	// checking the current one.
	ResetPassword(ctx context.Context, accountID uuid.UUID, input ResetPasswordInput) error
}
