package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the tables both binaries rely on. Statements are idempotent
// so every instance can run them at boot without coordination.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS source_events (
		id         TEXT PRIMARY KEY,
		stream     TEXT NOT NULL,
		payload    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dedup_markers (
		key        TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_tokens (
		id          TEXT PRIMARY KEY,
		token       TEXT,
		owner_id    TEXT,
		owner_email TEXT,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_notifications (
		id              TEXT PRIMARY KEY,
		type            TEXT NOT NULL,
		title           TEXT NOT NULL,
		body            TEXT NOT NULL,
		url             TEXT NOT NULL,
		source_event_id TEXT NOT NULL,
		read            BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_notifications_created_at
		ON admin_notifications (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_dedup_markers_expires_at
		ON dedup_markers (expires_at)`,
}

// EnsureSchema creates the wildpost tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
