package notification

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use the PostgreSQL implementation.
type InMemoryRepository struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
}

// NewInMemoryRepository creates a new in-memory notification repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{notifications: make(map[string]*Notification)}
}

// Create appends a new notification record.
func (r *InMemoryRepository) Create(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *n
	r.notifications[n.ID] = &clone
	return nil
}

// List retrieves notifications, newest first.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*Notification
	for _, n := range r.notifications {
		if opts.UnreadOnly && n.Read {
			continue
		}
		clone := *n
		items = append(items, &clone)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

// MarkRead sets the read flag on a notification.
func (r *InMemoryRepository) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

// Delete removes a notification.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return ErrNotificationNotFound
	}
	delete(r.notifications, id)
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
