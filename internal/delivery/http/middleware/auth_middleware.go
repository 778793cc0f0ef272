package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
)

// AuthMiddleware authenticates requests from bearer tokens. The same ordered
// pipeline serves both access- and refresh-protected routes; only the
// expected token type and the allowed roles differ per route.
type AuthMiddleware struct {
	codec       service.TokenCodec
	revocations repository.RevocationStore
	accountRepo repository.AccountRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	codec service.TokenCodec,
	revocations repository.RevocationStore,
	accountRepo repository.AccountRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		codec:       codec,
		revocations: revocations,
		accountRepo: accountRepo,
	}
}

// RequireAccess guards a route with access-token authentication. The account
// resolved from the token is stored on the context for handlers.
func (m *AuthMiddleware) RequireAccess(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, account, err := m.authenticate(c, service.TokenTypeAccess, entity.Roles(roles))
			if err != nil {
				return err
			}

			deliverycontext.SetTokenClaims(c, claims)
			deliverycontext.SetAccount(c, account)

			return next(c)
		}
	}
}

// RequireRefresh guards the token rotation route with refresh-token
// authentication. Anonymous requests are rejected.
func (m *AuthMiddleware) RequireRefresh() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, account, err := m.authenticate(c, service.TokenTypeRefresh, entity.Roles{entity.RoleMember})
			if err != nil {
				return err
			}

			deliverycontext.SetTokenClaims(c, claims)
			deliverycontext.SetAccount(c, account)

			return next(c)
		}
	}
}

// authenticate runs the pipeline:
//  1. extract the bearer token; a missing or garbled header means anonymous
//  2. decode and verify the token
//  3. check the token type against what the route expects
//  4. refresh tokens only: reject already-revoked token ids
//  5. resolve the subject email to an account
//  6. apply the role policy
func (m *AuthMiddleware) authenticate(c echo.Context, expected service.TokenType, roles entity.Roles) (*service.TokenClaims, *entity.Account, error) {
	ctx := c.Request().Context()

	token := extractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if token == "" {
		// Anonymous. The role policy decides whether that is acceptable.
		if err := checkRolePolicy(nil, roles); err != nil {
			return nil, nil, err
		}

		return nil, nil, nil
	}

	claims, err := m.codec.Decode(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, nil, domainerrors.ErrTokenExpired.WrapMessage("token expired")
		}

		return nil, nil, domainerrors.ErrInvalidCredentials.WrapMessage("token rejected")
	}

	if claims.Type != string(expected) {
		return nil, nil, domainerrors.ErrInvalidTokenType.WrapMessage("unexpected token type " + claims.Type)
	}

	if expected == service.TokenTypeRefresh {
		revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to check token revocation")
		}
		if revoked {
			return nil, nil, domainerrors.ErrTokenRevoked.WrapMessage("refresh token already used")
		}
	}

	account, err := m.accountRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil, domainerrors.ErrAccountNotFound.WrapMessage("token subject not found")
		}

		return nil, nil, errors.Wrap(err, "failed to resolve token subject")
	}

	if err := checkRolePolicy(account, roles); err != nil {
		return nil, nil, err
	}

	return claims, account, nil
}

// checkRolePolicy applies the route's role policy to the resolved account.
// GUEST in the allowed roles lets anonymous requests pass with a nil account.
// Real per-role comparison is not implemented; any active account passes.
func checkRolePolicy(account *entity.Account, roles entity.Roles) error {
	if account == nil {
		if roles.Contains(entity.RoleGuest) {
			return nil
		}

		return domainerrors.ErrNotAuthenticated.WrapMessage("authentication required")
	}

	if !account.IsActive {
		return domainerrors.ErrOperationNotPermitted.WrapMessage("account is inactive")
	}

	return nil
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
