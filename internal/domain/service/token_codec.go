package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"passport/internal/errors"
)

// TokenType distinguishes the two kinds of signed session tokens.
type TokenType string

const (
	// TokenTypeAccess is the short-lived credential that authorizes API calls.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is the long-lived, single-use credential exchanged for
	// a new token pair.
	TokenTypeRefresh TokenType = "refresh"
)

// Decode failure sentinels. The delivery layer translates these into the
// unauthenticated error taxonomy.
var (
	// ErrTokenExpired is returned when a token's expiry is strictly in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignatureInvalid is returned when the signature does not verify.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenMalformed is returned when the token is structurally invalid.
	ErrTokenMalformed = errors.New("token is malformed")
)

// TokenClaims is the decoded payload of a session token.
type TokenClaims struct {
	Type string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenCodec encodes and decodes signed, expiring session tokens.
// Subject is the account email; every issuance gets a fresh unique id (jti)
// so refresh tokens can be individually revoked.
type TokenCodec interface {
	// Encode builds and signs a token of the given type expiring after lifetime.
	Encode(tokenType TokenType, lifetime time.Duration, subject string) (string, error)

	// Decode verifies signature and expiry and returns the claims. Failures
	// map to ErrTokenExpired, ErrTokenSignatureInvalid or ErrTokenMalformed.
	Decode(token string) (*TokenClaims, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}

// URLSafeCodec produces short-lived, purpose-bound opaque tokens suitable for
// embedding in URLs, e.g. email verification links. Unlike TokenCodec, expiry
// is decided at decode time: a token is expired when issuedAt+maxAge is in
// the past.
type URLSafeCodec interface {
	// Encode signs the payload together with the current timestamp.
	Encode(payload map[string]string) (string, error)

	// Decode verifies the signature and the token's age against maxAge.
	// Failures map to ErrTokenExpired, ErrTokenSignatureInvalid or
	// ErrTokenMalformed.
	Decode(token string, maxAge time.Duration) (map[string]string, error)
}
