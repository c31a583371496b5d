package token_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/wildpost/wildpost/internal/token"
)

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := token.NewRegistry(token.NewInMemoryRepository())
	ctx := context.Background()

	if err := registry.RegisterToken(ctx, "tok-a", "adm_1", "a@example.com"); err != nil {
		t.Fatalf("RegisterToken: %v", err)
	}
	if err := registry.RegisterToken(ctx, "tok-b", "adm_2", "b@example.com"); err != nil {
		t.Fatalf("RegisterToken: %v", err)
	}

	tokens, err := registry.ListTokens(ctx)
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	slices.Sort(tokens)
	if !slices.Equal(tokens, []string{"tok-a", "tok-b"}) {
		t.Errorf("ListTokens() = %v, want [tok-a tok-b]", tokens)
	}
}

func TestRegistry_ReregistrationIsIdempotent(t *testing.T) {
	registry := token.NewRegistry(token.NewInMemoryRepository())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := registry.RegisterToken(ctx, "tok-a", "adm_1", "a@example.com"); err != nil {
			t.Fatalf("RegisterToken attempt %d: %v", i, err)
		}
	}

	tokens, err := registry.ListTokens(ctx)
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if len(tokens) != 1 {
		t.Errorf("expected a single registration, got %v", tokens)
	}
}

func TestRegistry_RegisterEmptyTokenFails(t *testing.T) {
	registry := token.NewRegistry(token.NewInMemoryRepository())

	err := registry.RegisterToken(context.Background(), "", "adm_1", "a@example.com")
	if !errors.Is(err, token.ErrEmptyToken) {
		t.Errorf("RegisterToken(\"\") = %v, want ErrEmptyToken", err)
	}
}

func TestRegistry_ListNormalizesLegacyIDKeyedRecords(t *testing.T) {
	repo := token.NewInMemoryRepository()
	ctx := context.Background()

	// Legacy scheme: the record id carries the token, field left empty.
	now := time.Now()
	if err := repo.Upsert(ctx, token.Record{ID: "legacy-tok", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	registry := token.NewRegistry(repo)
	tokens, err := registry.ListTokens(ctx)
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if !slices.Contains(tokens, "legacy-tok") {
		t.Errorf("expected legacy id-keyed token to be listed, got %v", tokens)
	}
}

func TestRegistry_ListDeduplicatesTokenValues(t *testing.T) {
	repo := token.NewInMemoryRepository()
	ctx := context.Background()

	now := time.Now()
	// Same token value present under both keying schemes.
	_ = repo.Upsert(ctx, token.Record{ID: "tok-a", Token: "tok-a", CreatedAt: now, UpdatedAt: now})
	_ = repo.Upsert(ctx, token.Record{ID: "doc-1", Token: "tok-a", CreatedAt: now, UpdatedAt: now})

	tokens, err := token.NewRegistry(repo).ListTokens(ctx)
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0] != "tok-a" {
		t.Errorf("ListTokens() = %v, want [tok-a]", tokens)
	}
}

func TestRegistry_RevokeTokensBothKeyingSchemes(t *testing.T) {
	repo := token.NewInMemoryRepository()
	ctx := context.Background()

	now := time.Now()
	_ = repo.Upsert(ctx, token.Record{ID: "tok-a", Token: "tok-a", CreatedAt: now, UpdatedAt: now})
	_ = repo.Upsert(ctx, token.Record{ID: "doc-2", Token: "tok-b", CreatedAt: now, UpdatedAt: now})
	_ = repo.Upsert(ctx, token.Record{ID: "tok-c", Token: "tok-c", CreatedAt: now, UpdatedAt: now})

	registry := token.NewRegistry(repo)
	if err := registry.RevokeTokens(ctx, []string{"tok-a", "tok-b"}); err != nil {
		t.Fatalf("RevokeTokens: %v", err)
	}

	tokens, err := registry.ListTokens(ctx)
	if err != nil {
		t.Fatalf("ListTokens: %v", err)
	}
	if !slices.Equal(tokens, []string{"tok-c"}) {
		t.Errorf("ListTokens() = %v, want [tok-c]", tokens)
	}
}

func TestRegistry_RevokeToleratesAbsentTokens(t *testing.T) {
	registry := token.NewRegistry(token.NewInMemoryRepository())

	if err := registry.RevokeTokens(context.Background(), []string{"never-registered"}); err != nil {
		t.Errorf("RevokeTokens of absent token: %v", err)
	}
}

func TestRegistry_RevokeEmptySetIsNoOp(t *testing.T) {
	registry := token.NewRegistry(token.NewInMemoryRepository())

	if err := registry.RevokeTokens(context.Background(), nil); err != nil {
		t.Errorf("RevokeTokens(nil): %v", err)
	}
	if err := registry.RevokeTokens(context.Background(), []string{"", ""}); err != nil {
		t.Errorf("RevokeTokens of empty values: %v", err)
	}
}
