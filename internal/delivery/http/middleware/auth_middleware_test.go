package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
)

// fakeCodec resolves tokens from a fixed table.
type fakeCodec struct {
	claims map[string]*service.TokenClaims
	errs   map[string]error
}

func (c *fakeCodec) Decode(token string) (*service.TokenClaims, error) {
	if err, ok := c.errs[token]; ok {
		return nil, err
	}
	if claims, ok := c.claims[token]; ok {
		return claims, nil
	}

	return nil, service.ErrTokenSignatureInvalid
}

func (c *fakeCodec) Encode(service.TokenType, time.Duration, string) (string, error) {
	panic("not used")
}

func (c *fakeCodec) AccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (c *fakeCodec) RefreshTokenTTL() time.Duration { return 24 * time.Hour }

type fakeRevocations struct {
	revoked  map[string]bool
	recorded []string
}

func (s *fakeRevocations) Record(_ context.Context, tokenID string, _ time.Duration) error {
	s.recorded = append(s.recorded, tokenID)

	return nil
}

func (s *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

type fakeAccounts struct {
	byEmail map[string]*entity.Account
}

func (r *fakeAccounts) FindByID(context.Context, uuid.UUID) (*entity.Account, error) {
	panic("not used")
}

func (r *fakeAccounts) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	if account, ok := r.byEmail[email]; ok {
		return account, nil
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccounts) Create(context.Context, *entity.Account) error { panic("not used") }
func (r *fakeAccounts) Update(context.Context, *entity.Account) error { panic("not used") }

type authFixture struct {
	mw          *AuthMiddleware
	codec       *fakeCodec
	revocations *fakeRevocations
	accounts    *fakeAccounts
}

func newAuthFixture() *authFixture {
	codec := &fakeCodec{
		claims: make(map[string]*service.TokenClaims),
		errs:   make(map[string]error),
	}
	revocations := &fakeRevocations{revoked: make(map[string]bool)}
	accounts := &fakeAccounts{byEmail: make(map[string]*entity.Account)}

	return &authFixture{
		mw:          NewAuthMiddleware(codec, revocations, accounts),
		codec:       codec,
		revocations: revocations,
		accounts:    accounts,
	}
}

func (f *authFixture) addToken(token string, tokenType service.TokenType, subject, jti string) {
	f.codec.claims[token] = &service.TokenClaims{
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func (f *authFixture) addAccount(email string, active bool) *entity.Account {
	account := &entity.Account{Email: email, IsActive: active}
	f.accounts.byEmail[email] = account

	return account
}

// run sends a request through the given middleware and reports the handler
// outcome plus whatever the pipeline stashed on the context.
func run(t *testing.T, mwFunc echo.MiddlewareFunc, authHeader string) (error, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	err := mwFunc(func(c echo.Context) error {
		handlerCalled = true

		return c.NoContent(http.StatusOK)
	})(c)

	return err, c, handlerCalled
}

func TestAuthMiddleware_MissingHeaderRequiresAuth(t *testing.T) {
	f := newAuthFixture()

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "")
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	assert.False(t, called)
}

func TestAuthMiddleware_GarbledHeaderIsAnonymous(t *testing.T) {
	f := newAuthFixture()

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Token abc")
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	assert.False(t, called)
}

func TestAuthMiddleware_GuestRoleAllowsAnonymous(t *testing.T) {
	f := newAuthFixture()

	err, c, called := run(t, f.mw.RequireAccess(entity.RoleGuest, entity.RoleMember), "")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Nil(t, deliverycontext.GetAccount(c))
	assert.Nil(t, deliverycontext.GetTokenClaims(c))
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	f := newAuthFixture()
	f.codec.errs["expired-token"] = service.ErrTokenExpired

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Bearer expired-token")
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	assert.False(t, called)
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	f := newAuthFixture()

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Bearer forged-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.False(t, called)
}

func TestAuthMiddleware_WrongTokenType(t *testing.T) {
	f := newAuthFixture()
	f.addAccount("alice@example.com", true)
	f.addToken("refresh-token", service.TokenTypeRefresh, "alice@example.com", "jti-1")

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Bearer refresh-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTokenType)
	assert.False(t, called)
}

func TestAuthMiddleware_AccessTokenResolvesAccount(t *testing.T) {
	f := newAuthFixture()
	account := f.addAccount("alice@example.com", true)
	f.addToken("access-token", service.TokenTypeAccess, "alice@example.com", "jti-1")

	err, c, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Bearer access-token")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, account, deliverycontext.GetAccount(c))
	require.NotNil(t, deliverycontext.GetTokenClaims(c))
	assert.Equal(t, "jti-1", deliverycontext.GetTokenClaims(c).ID)
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture()
	account := f.addAccount("alice@example.com", true)
	f.addToken("access-token", service.TokenTypeAccess, "alice@example.com", "jti-1")

	for _, header := range []string{"bearer access-token", "BEARER access-token", "Bearer access-token"} {
		err, c, called := run(t, f.mw.RequireAccess(entity.RoleMember), header)
		require.NoError(t, err, header)
		assert.True(t, called, header)
		assert.Equal(t, account, deliverycontext.GetAccount(c))
	}
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	f := newAuthFixture()
	f.addToken("access-token", service.TokenTypeAccess, "ghost@example.com", "jti-1")

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Bearer access-token")
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
	assert.False(t, called)
}

func TestAuthMiddleware_InactiveAccount(t *testing.T) {
	f := newAuthFixture()
	f.addAccount("alice@example.com", false)
	f.addToken("access-token", service.TokenTypeAccess, "alice@example.com", "jti-1")

	err, _, called := run(t, f.mw.RequireAccess(entity.RoleMember), "Bearer access-token")
	assert.ErrorIs(t, err, domainerrors.ErrOperationNotPermitted)
	assert.False(t, called)
}

func TestAuthMiddleware_RevokedRefreshToken(t *testing.T) {
	f := newAuthFixture()
	f.addAccount("alice@example.com", true)
	f.addToken("refresh-token", service.TokenTypeRefresh, "alice@example.com", "jti-1")
	f.revocations.revoked["jti-1"] = true

	err, _, called := run(t, f.mw.RequireRefresh(), "Bearer refresh-token")
	assert.ErrorIs(t, err, domainerrors.ErrTokenRevoked)
	assert.False(t, called)
}

func TestAuthMiddleware_FreshRefreshTokenPasses(t *testing.T) {
	f := newAuthFixture()
	f.addAccount("alice@example.com", true)
	f.addToken("refresh-token", service.TokenTypeRefresh, "alice@example.com", "jti-1")

	err, c, called := run(t, f.mw.RequireRefresh(), "Bearer refresh-token")
	require.NoError(t, err)
	assert.True(t, called)
	require.NotNil(t, deliverycontext.GetTokenClaims(c))

	// The middleware only checks revocation; rotation belongs to the handler.
	assert.Empty(t, f.revocations.recorded)
}

func TestAuthMiddleware_RefreshRejectsAnonymous(t *testing.T) {
	f := newAuthFixture()

	err, _, called := run(t, f.mw.RequireRefresh(), "")
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	assert.False(t, called)
}
