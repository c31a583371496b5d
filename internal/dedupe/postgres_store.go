package dedupe

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL dedup store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateIfAbsent inserts the marker row, relying on the primary key for
// atomicity. A conflicting insert affects zero rows, which is exactly the
// duplicate case; every other failure surfaces as an error.
func (s *PostgresStore) CreateIfAbsent(ctx context.Context, key string, expiresAt time.Time) (bool, error) {
	query := `
		INSERT INTO dedup_markers (key, created_at, expires_at)
		VALUES ($1, now(), $2)
		ON CONFLICT (key) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query, key, expiresAt)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// Ensure PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
