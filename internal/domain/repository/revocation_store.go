package repository

import (
	"context"
	"time"
)

// RevocationStore records which refresh-token ids (jti) have been consumed.
// Entries carry a TTL equal to the remaining validity window of the token, so
// they self-expire and never need explicit cleanup. There is no un-revoke.
type RevocationStore interface {
	// Record marks a token id as revoked for the given TTL.
	Record(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token id is present and unexpired.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
