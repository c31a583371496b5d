// Package notification persists the in-app notification records shown in
// the admin console. These records are the durable source of truth for an
// event having been handled; push delivery is best-effort on top.
package notification

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Type tags a notification with its originating stream.
type Type string

const (
	TypeContact      Type = "contact"
	TypeAllowRequest Type = "allow_request"
	TypePartRequest  Type = "part_request"
)

// Valid reports whether t is a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeContact, TypeAllowRequest, TypePartRequest:
		return true
	}
	return false
}

// Notification is one admin-console notification record.
type Notification struct {
	ID    string
	Type  Type
	Title string
	Body  string

	// URL is the admin-console path the notification links to.
	URL string

	// SourceEventID ties the record back to the source event for
	// traceability.
	SourceEventID string

	Read      bool
	CreatedAt time.Time
}

// ListOptions contains options for listing notifications.
type ListOptions struct {
	Limit      int
	UnreadOnly bool
}
