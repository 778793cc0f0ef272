package context

import (
	"github.com/labstack/echo/v4"

	"passport/internal/domain/service"
)

// KeyTokenClaims is the key for storing decoded token claims in context.
const KeyTokenClaims ContextKey = "token_claims"

// GetTokenClaims extracts the decoded token claims from echo.Context.
// Returns nil for anonymous requests.
func GetTokenClaims(c echo.Context) *service.TokenClaims {
	if claims, ok := c.Get(string(KeyTokenClaims)).(*service.TokenClaims); ok {
		return claims
	}

	return nil
}

// SetTokenClaims stores the decoded token claims in echo.Context.
func SetTokenClaims(c echo.Context, claims *service.TokenClaims) {
	c.Set(string(KeyTokenClaims), claims)
}
