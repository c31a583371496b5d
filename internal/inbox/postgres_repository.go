package inbox

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL-backed repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create appends a new source record.
func (r *PostgresRepository) Create(ctx context.Context, s *Submission) error {
	query := `
		INSERT INTO source_events (id, stream, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, s.ID, string(s.Stream), []byte(s.Payload), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert source event: %w", err)
	}
	return nil
}
