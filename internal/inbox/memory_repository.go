package inbox

import (
	"context"
	"sync"
)

// InMemoryRepository implements Repository with an in-memory slice.
// Intended for testing.
type InMemoryRepository struct {
	mu      sync.Mutex
	records []*Submission
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Create appends a new source record.
func (r *InMemoryRepository) Create(_ context.Context, s *Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *s
	r.records = append(r.records, &copied)
	return nil
}

// All returns every stored record in insertion order.
func (r *InMemoryRepository) All() []*Submission {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Submission, len(r.records))
	copy(out, r.records)
	return out
}
