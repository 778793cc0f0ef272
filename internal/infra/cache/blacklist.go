package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"passport/internal/domain/repository"
	"passport/internal/errors"
)

// revokedMarker is the value stored for a consumed token id. The value itself
// is irrelevant; key presence is what marks revocation.
const revokedMarker = "40"

// tokenBlacklist implements repository.RevocationStore on Redis. Entries
// self-expire through the key TTL, so the blacklist never needs sweeping.
type tokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist is the constructor for tokenBlacklist.
func NewTokenBlacklist(client *redis.Client) repository.RevocationStore {
	return &tokenBlacklist{client: client}
}

// Record marks a token id as revoked for the given TTL.
func (b *tokenBlacklist) Record(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// The token is already past its expiry; nothing to record.
		return nil
	}

	if err := b.client.Set(ctx, tokenID, revokedMarker, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to record revoked token")
	}

	return nil
}

// IsRevoked reports whether the token id is present and unexpired.
func (b *tokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := b.client.Get(ctx, tokenID).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to look up revoked token")
	}

	return true, nil
}
