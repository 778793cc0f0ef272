// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

type registerRequest struct {
	// Name is optional; only its length is constrained.
	Name     string `json:"name" validate:"omitempty,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=6"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// accountResponse is the public view of an account. The password hash never
// leaves the service.
type accountResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toAccountResponse(account *entity.Account) *accountResponse {
	return &accountResponse{
		ID:         account.ID,
		Email:      account.Email,
		Name:       account.Name,
		IsActive:   account.IsActive,
		IsVerified: account.IsVerified,
		VerifiedAt: account.VerifiedAt,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid registration payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.uc.Register(c.Request().Context(), usecase.RegisterAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Account registered", toAccountResponse(account))
}

// VerifyEmail handles the email verification link.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return domainerrors.ErrValidation.WrapMessage("missing verification token")
	}

	if err := h.uc.VerifyEmail(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Email verified", nil)
}

// ResetPassword handles the password change request of an authenticated account.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	account := deliverycontext.GetAccount(c)
	if account == nil {
		return domainerrors.ErrNotAuthenticated.WrapMessage("no authenticated account")
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid reset password payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.ResetPassword(c.Request().Context(), account.ID, usecase.ResetPasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
