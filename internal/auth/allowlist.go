package auth

import (
	"context"
	"strings"
)

// Allowlist decides which admin email addresses may use the admin API.
type Allowlist interface {
	// IsAllowed reports whether email belongs to an admin.
	IsAllowed(ctx context.Context, email string) (bool, error)
}

// StaticAllowlist is an Allowlist backed by a fixed set of addresses,
// typically loaded from the environment at startup. Matching is
// case-insensitive on the whole address.
type StaticAllowlist struct {
	emails map[string]struct{}
}

// NewStaticAllowlist creates an allow-list from the given addresses.
// Empty entries and surrounding whitespace are ignored.
func NewStaticAllowlist(emails []string) *StaticAllowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return &StaticAllowlist{emails: set}
}

// ParseAllowlist builds an allow-list from a comma-separated string,
// the format used by the ADMIN_ALLOWED_EMAILS environment variable.
func ParseAllowlist(s string) *StaticAllowlist {
	return NewStaticAllowlist(strings.Split(s, ","))
}

// IsAllowed reports whether email belongs to an admin.
func (a *StaticAllowlist) IsAllowed(_ context.Context, email string) (bool, error) {
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok, nil
}

// Len returns the number of configured addresses.
func (a *StaticAllowlist) Len() int {
	return len(a.emails)
}
