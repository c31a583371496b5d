package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wildpost/wildpost/internal/event"
)

// Validation errors.
var (
	ErrInvalidType  = errors.New("invalid notification type")
	ErrMissingTitle = errors.New("notification title is required")
)

// WriteInput describes one notification to append.
type WriteInput struct {
	Type          Type
	Title         string
	Body          string
	URL           string
	SourceEventID string
}

// Service provides notification operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new notification service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Write appends one notification record for a source event. The stored body
// is truncated to the display budget; an over-long body is not an error.
// Callers must treat a Write failure as fatal for the whole event: the
// record is the durable artifact admins rely on when push delivery fails.
func (s *Service) Write(ctx context.Context, input WriteInput) (*Notification, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidType
	}
	if input.Title == "" {
		return nil, ErrMissingTitle
	}

	n := &Notification{
		ID:            "ntf_" + uuid.New().String(),
		Type:          input.Type,
		Title:         input.Title,
		Body:          event.Truncate(input.Body, event.StoredBodyLimit),
		URL:           input.URL,
		SourceEventID: input.SourceEventID,
		Read:          false,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return n, nil
}

// List retrieves notifications for the admin console, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Notification, error) {
	return s.repo.List(ctx, opts)
}

// MarkRead marks a notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
