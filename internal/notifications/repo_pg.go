package notifications

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts one notification.
func (r *PGRepository) Create(ctx context.Context, n *Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, title, message, type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, read, created_at`,
		n.UserID, n.Title, n.Message, n.Type).
		Scan(&n.ID, &n.Read, &n.CreatedAt)
}

// CreateBatch inserts a fan-out in one round trip.
func (r *PGRepository) CreateBatch(ctx context.Context, batch []Notification) error {
	if len(batch) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, n := range batch {
		b.Queue(`INSERT INTO notifications (user_id, title, message, type) VALUES ($1, $2, $3, $4)`,
			n.UserID, n.Title, n.Message, n.Type)
	}
	return r.pool.SendBatch(ctx, b).Close()
}

// MarkRead flips one notification read, scoped to its owner.
func (r *PGRepository) MarkRead(ctx context.Context, id, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// MarkAllRead flips every unread notification of one user.
func (r *PGRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	return err
}

// ListByUser returns a user's notifications, newest first.
func (r *PGRepository) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, message, type, read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// UnreadCount returns the number of unread notifications for one user.
func (r *PGRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID).
		Scan(&count)
	return count, err
}

var _ Repository = (*PGRepository)(nil)
