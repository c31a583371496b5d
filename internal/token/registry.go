package token

import (
	"context"
	"fmt"
	"time"
)

// Registry provides the admin token operations used by the notification
// pipeline and the admin console.
type Registry struct {
	repo Repository
	now  func() time.Time
}

// NewRegistry creates a new token registry.
func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo, now: time.Now}
}

// ListTokens returns the de-duplicated set of all deliverable token values.
// Records with no usable token under either keying scheme are excluded.
func (r *Registry) ListTokens(ctx context.Context) ([]string, error) {
	records, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin tokens: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	tokens := make([]string, 0, len(records))
	for _, rec := range records {
		value := rec.Value()
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		tokens = append(tokens, value)
	}
	return tokens, nil
}

// RegisterToken upserts the registration for token. Re-registering the same
// token refreshes ownership metadata and the updated timestamp only.
func (r *Registry) RegisterToken(ctx context.Context, tok, ownerID, ownerEmail string) error {
	if tok == "" {
		return ErrEmptyToken
	}

	now := r.now()
	rec := Record{
		ID:         tok,
		Token:      tok,
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := r.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("register admin token: %w", err)
	}
	return nil
}

// RevokeTokens deletes every registration whose token value appears in
// tokens. Already-absent tokens are tolerated; an empty set is a no-op.
func (r *Registry) RevokeTokens(ctx context.Context, tokens []string) error {
	uniq := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	if len(uniq) == 0 {
		return nil
	}

	if err := r.repo.DeleteByTokens(ctx, uniq); err != nil {
		return fmt.Errorf("revoke admin tokens: %w", err)
	}
	return nil
}
