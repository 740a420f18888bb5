package service

import (
	"context"
	"time"
)

// TokenRevocationStore is the injected denylist collaborator for refresh
// token revocation. Entries only need to live as long as the token they
// revoke, so implementations may expire them after the ttl.
type TokenRevocationStore interface {
	// Revoke marks a token ID (jti) as revoked for the given ttl.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
