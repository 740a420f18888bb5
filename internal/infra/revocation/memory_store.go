package revocation

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/service"
)

// memoryRevocationStore is the single-process fallback denylist. Expired
// entries are dropped lazily on lookup.
type memoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryStore creates an in-memory TokenRevocationStore.
func NewMemoryStore() service.TokenRevocationStore {
	return &memoryRevocationStore{
		entries: make(map[string]time.Time),
	}
}

// Revoke marks a token ID as revoked for the given ttl.
func (s *memoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = time.Now().Add(ttl)

	return nil
}

// IsRevoked reports whether a token ID has been revoked.
func (s *memoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	expiry, ok := s.entries[tokenID]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.entries, tokenID)
		s.mu.Unlock()

		return false, nil
	}

	return true, nil
}
