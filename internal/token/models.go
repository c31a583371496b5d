// Package token stores the push-delivery endpoints of administrator devices.
package token

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrEmptyToken = errors.New("token value is empty")
)

// Record is one registered administrator push endpoint. The token value is
// also the record's natural identifier; ID is kept separate because
// historical data was written under an independent id with the token in a
// field, and both schemes must remain readable and deletable.
type Record struct {
	ID         string
	Token      string
	OwnerID    string
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Value returns the usable token value for this record, normalizing the
// legacy scheme where the record id carried the token and the field was
// left empty. An empty result means the record holds no deliverable token.
func (r Record) Value() string {
	if r.Token != "" {
		return r.Token
	}
	return r.ID
}
