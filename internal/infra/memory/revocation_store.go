package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore is the in-memory implementation of app.RevocationStore.
// Entries accumulate for the process lifetime (a restart clears them); the
// Redis implementation is the one that honors TTLs.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]struct{})}
}

func (s *RevocationStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = struct{}{}
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[jti]
	return ok, nil
}
