// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/domain/service"
)

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// SessionUsecase defines the interface for login and refresh-token operations.
type SessionUsecase interface {
	// Login verifies the credentials and issues a fresh token pair.
	Login(ctx context.Context, input LoginInput) (*entity.TokenPair, error)
	// RotateRefreshToken revokes the presented refresh token and issues a
	// fresh pair for the same subject. Refresh tokens are single-use.
	RotateRefreshToken(ctx context.Context, claims *service.TokenClaims) (*entity.TokenPair, error)
}
