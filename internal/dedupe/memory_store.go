package dedupe

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore is an in-memory implementation of Store.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryStore struct {
	mu      sync.Mutex
	markers map[string]time.Time // key -> expiry
}

// NewInMemoryStore creates a new in-memory dedup store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{markers: make(map[string]time.Time)}
}

// CreateIfAbsent creates the marker under a single lock, matching the
// atomicity the gate requires.
func (s *InMemoryStore) CreateIfAbsent(_ context.Context, key string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[key]; ok {
		return false, nil
	}
	s.markers[key] = expiresAt
	return true, nil
}

// Contains reports whether a marker exists for key.
func (s *InMemoryStore) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.markers[key]
	return ok
}

// Ensure InMemoryStore implements Store.
var _ Store = (*InMemoryStore)(nil)
