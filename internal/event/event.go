// Package event defines the source-event envelope that drives the admin
// notification pipeline.
package event

import (
	"encoding/json"
	"errors"
	"time"
)

// Envelope errors.
var (
	ErrUnknownStream = errors.New("unknown event stream")
	ErrMissingID     = errors.New("event id is required")
)

// Stream identifies one of the append-only source streams.
type Stream string

const (
	StreamContact      Stream = "contacts"
	StreamAllowRequest Stream = "allow_requests"
	StreamPartRequest  Stream = "part_requests"
)

// Valid reports whether s is one of the known streams.
func (s Stream) Valid() bool {
	switch s {
	case StreamContact, StreamAllowRequest, StreamPartRequest:
		return true
	}
	return false
}

// Event is a "document created" notification for a single source record.
// The payload is the raw source document; each stream has its own shape.
type Event struct {
	// ID is the source record's identifier, assigned at creation.
	ID string

	// Stream names the logical stream the record was created in.
	Stream Stream

	// Payload is the source record body, JSON-encoded.
	Payload json.RawMessage

	// CreatedAt is the source record's creation time.
	CreatedAt time.Time
}

// DedupKey returns the idempotency key for this event. Collisions are only
// possible for redeliveries of the same source record.
func (e Event) DedupKey() string {
	return string(e.Stream) + "_" + e.ID
}

// Validate checks the envelope is routable.
func (e Event) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if !e.Stream.Valid() {
		return ErrUnknownStream
	}
	return nil
}

// ContactPayload is the body of a contact-message record.
type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AllowRequestPayload is the body of an allow-list request record.
type AllowRequestPayload struct {
	Email string `json:"email"`
	Note  string `json:"note,omitempty"`
}

// PartRequestPayload is the body of a meat-part request record.
type PartRequestPayload struct {
	Animal string `json:"animal"`
	Part   string `json:"part"`
	Grams  int    `json:"grams,omitempty"`
	Email  string `json:"email,omitempty"`
}
