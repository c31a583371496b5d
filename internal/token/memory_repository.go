package token

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Record // keyed by record ID
}

// NewInMemoryRepository creates a new in-memory token repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]Record)}
}

// List retrieves every registered token record.
func (r *InMemoryRepository) List(_ context.Context) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	return records, nil
}

// Upsert creates or overwrites the record keyed by its ID.
func (r *InMemoryRepository) Upsert(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.records[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	}
	r.records[rec.ID] = rec
	return nil
}

// DeleteByTokens removes records matching either keying scheme.
func (r *InMemoryRepository) DeleteByTokens(_ context.Context, tokens []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doomed := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		doomed[t] = struct{}{}
	}

	for id, rec := range r.records {
		if _, ok := doomed[id]; ok {
			delete(r.records, id)
			continue
		}
		if _, ok := doomed[rec.Token]; ok {
			delete(r.records, id)
		}
	}
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
