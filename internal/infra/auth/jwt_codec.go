// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
type jwtCodec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTCodec is the constructor for jwtCodec. The signing algorithm name
// comes from configuration and must be one of the HMAC family.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Token.SecretKey == "" {
		return nil, errors.New("token secret key must be provided")
	}

	method := jwt.GetSigningMethod(cfg.Token.Algorithm)
	if method == nil {
		return nil, errors.Errorf("unknown signing algorithm: %s", cfg.Token.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unsupported signing algorithm: %s", cfg.Token.Algorithm)
	}

	return &jwtCodec{
		secret:     []byte(cfg.Token.SecretKey),
		method:     method,
		accessTTL:  cfg.Token.AccessTTL,
		refreshTTL: cfg.Token.RefreshTTL,
	}, nil
}

// Encode builds and signs a token carrying {type, iat, exp, sub, jti}.
// Each issuance gets a fresh jti so refresh tokens can be revoked one by one.
func (c *jwtCodec) Encode(tokenType service.TokenType, lifetime time.Duration, subject string) (string, error) {
	now := time.Now()
	claims := &service.TokenClaims{
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Decode verifies signature and expiry. Expiry is exact: a token whose exp is
// strictly in the past fails, with no leeway.
func (c *jwtCodec) Decode(token string) (*service.TokenClaims, error) {
	claims := &service.TokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}

		return c.secret, nil
	})
	if err != nil {
		return nil, translateJWTError(err)
	}
	if !parsed.Valid {
		return nil, service.ErrTokenSignatureInvalid
	}

	return claims, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (c *jwtCodec) AccessTokenTTL() time.Duration {
	return c.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (c *jwtCodec) RefreshTokenTTL() time.Duration {
	return c.refreshTTL
}

// translateJWTError maps jwt library errors onto the domain sentinels so the
// rest of the system never imports the library's error values.
func translateJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return service.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return service.ErrTokenMalformed
	default:
		return service.ErrTokenMalformed
	}
}
