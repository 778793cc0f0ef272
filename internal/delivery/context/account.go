package context

import (
	"github.com/labstack/echo/v4"

	"passport/internal/domain/entity"
)

// KeyAccount is the key for storing the authenticated account in context.
const KeyAccount ContextKey = "account"

// GetAccount extracts the authenticated account from echo.Context.
// Returns nil for anonymous requests.
func GetAccount(c echo.Context) *entity.Account {
	if account, ok := c.Get(string(KeyAccount)).(*entity.Account); ok {
		return account
	}

	return nil
}

// SetAccount stores the authenticated account in echo.Context.
func SetAccount(c echo.Context, account *entity.Account) {
	c.Set(string(KeyAccount), account)
}
