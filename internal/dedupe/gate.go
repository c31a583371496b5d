// Package dedupe guarantees a source event is processed at most once even
// when the event transport redelivers it.
package dedupe

import (
	"context"
	"fmt"
	"time"
)

// DefaultMarkerTTL is how long a dedup marker is kept before a retention
// sweep may reclaim it. A re-created source record with the same natural
// key after this window is treated as a genuinely new event.
const DefaultMarkerTTL = 30 * 24 * time.Hour

// Store persists dedup markers. CreateIfAbsent must be atomic at the store
// level: two concurrent calls with the same key must not both return true.
type Store interface {
	// CreateIfAbsent creates the marker for key and returns true, or
	// returns false if the marker already exists. Any other failure is
	// returned as an error and must not be read as "duplicate".
	CreateIfAbsent(ctx context.Context, key string, expiresAt time.Time) (bool, error)
}

// Gate is the idempotency gate in front of the notification pipeline.
type Gate struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewGate creates a gate backed by store. A non-positive ttl falls back to
// DefaultMarkerTTL.
func NewGate(store Store, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultMarkerTTL
	}
	return &Gate{store: store, ttl: ttl, now: time.Now}
}

// ShouldProcessOnce reports whether the caller holds the first delivery of
// the event identified by key. True means proceed; false means another
// delivery already claimed it and every side effect must be skipped.
func (g *Gate) ShouldProcessOnce(ctx context.Context, key string) (bool, error) {
	created, err := g.store.CreateIfAbsent(ctx, key, g.now().Add(g.ttl))
	if err != nil {
		return false, fmt.Errorf("create dedup marker %q: %w", key, err)
	}
	return created, nil
}
