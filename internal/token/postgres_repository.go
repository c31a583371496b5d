package token

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL token repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List retrieves every registered token record.
func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, token, owner_id, owner_email, created_at, updated_at
		FROM admin_tokens
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.ID,
			&rec.Token,
			&rec.OwnerID,
			&rec.OwnerEmail,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Upsert creates or overwrites the record keyed by its token value,
// refreshing ownership metadata and the updated timestamp.
func (r *PostgresRepository) Upsert(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO admin_tokens (id, token, owner_id, owner_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			owner_id = EXCLUDED.owner_id,
			owner_email = EXCLUDED.owner_email,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Token,
		rec.OwnerID,
		rec.OwnerEmail,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// DeleteByTokens removes records matching either keying scheme in one
// statement. Missing tokens simply affect zero rows.
func (r *PostgresRepository) DeleteByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	query := `DELETE FROM admin_tokens WHERE id = ANY($1) OR token = ANY($1)`

	_, err := r.pool.Exec(ctx, query, tokens)
	return err
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
