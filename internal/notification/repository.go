package notification

import "context"

// Repository defines the interface for notification persistence.
type Repository interface {
	// Create appends a new notification record.
	Create(ctx context.Context, n *Notification) error

	// List retrieves notifications, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Notification, error)

	// MarkRead sets the read flag on a notification.
	MarkRead(ctx context.Context, id string) error

	// Delete removes a notification.
	Delete(ctx context.Context, id string) error
}
