package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"
)

// AuthHandler holds dependencies for login and token rotation handlers.
type AuthHandler struct {
	sessions usecase.SessionUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(sessions usecase.SessionUsecase) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the credential exchange for a token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WrapMessage("invalid login payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.sessions.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "", pair)
}

// RefreshToken exchanges a valid, unused refresh token for a fresh pair.
// The auth middleware has already verified the token and stashed its claims.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	claims := deliverycontext.GetTokenClaims(c)
	if claims == nil {
		return domainerrors.ErrNotAuthenticated.WrapMessage("no refresh token claims")
	}

	pair, err := h.sessions.RotateRefreshToken(c.Request().Context(), claims)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "", pair)
}
