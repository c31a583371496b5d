package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create appends a new notification record.
func (r *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO admin_notifications (id, type, title, body, url, source_event_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		n.ID,
		n.Type,
		n.Title,
		n.Body,
		n.URL,
		n.SourceEventID,
		n.Read,
		n.CreatedAt,
	)
	return err
}

// List retrieves notifications, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*Notification, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, type, title, body, url, source_event_id, read, created_at
		FROM admin_notifications
		WHERE ($1 = false OR read = false)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, opts.UnreadOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Title,
			&n.Body,
			&n.URL,
			&n.SourceEventID,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead sets the read flag on a notification.
func (r *PostgresRepository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE admin_notifications SET read = true WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// Delete removes a notification.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM admin_notifications WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
