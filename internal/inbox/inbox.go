// Package inbox persists the append-only source records behind the three
// event streams. Records are immutable after creation; the notification
// pipeline only ever reads them through the created event.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wildpost/wildpost/internal/event"
)

// Submission is one accepted source record.
type Submission struct {
	ID        string
	Stream    event.Stream
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Event returns the created-event envelope for this submission.
func (s *Submission) Event() event.Event {
	return event.Event{
		ID:        s.ID,
		Stream:    s.Stream,
		Payload:   s.Payload,
		CreatedAt: s.CreatedAt,
	}
}

// Repository defines the interface for source-record persistence.
type Repository interface {
	// Create appends a new source record.
	Create(ctx context.Context, s *Submission) error
}

// Service accepts submissions into a stream.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new inbox service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// idPrefixes keeps record ids readable in the admin console.
var idPrefixes = map[event.Stream]string{
	event.StreamContact:      "ct_",
	event.StreamAllowRequest: "ar_",
	event.StreamPartRequest:  "pr_",
}

// Submit appends payload as a new record in stream and returns it.
func (s *Service) Submit(ctx context.Context, stream event.Stream, payload json.RawMessage) (*Submission, error) {
	prefix, ok := idPrefixes[stream]
	if !ok {
		return nil, event.ErrUnknownStream
	}

	sub := &Submission{
		ID:        prefix + uuid.New().String(),
		Stream:    stream,
		Payload:   payload,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create %s record: %w", stream, err)
	}
	return sub, nil
}
