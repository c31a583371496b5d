package token

import "context"

// Repository defines the interface for admin token persistence.
type Repository interface {
	// List retrieves every registered token record.
	List(ctx context.Context) ([]Record, error)

	// Upsert creates or overwrites the record keyed by its token value.
	Upsert(ctx context.Context, rec Record) error

	// DeleteByTokens removes every record whose token value is in tokens.
	// Records written under either keying scheme (id = token, or token in
	// a field) must both match. Tokens with no record are not an error.
	DeleteByTokens(ctx context.Context, tokens []string) error
}
