package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndCheck(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "some-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "some-jti", time.Minute))

	revoked, err = store.IsRevoked(ctx, "some-jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_ExpiredEntryIsNotRevoked(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "short-lived", time.Nanosecond))
	time.Sleep(time.Millisecond)

	revoked, err := store.IsRevoked(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStore_NonPositiveTTLIsIgnored(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "already-expired", -time.Minute))

	revoked, err := store.IsRevoked(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}
