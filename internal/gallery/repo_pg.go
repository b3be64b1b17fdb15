package gallery

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yeyclub/platform/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const itemColumns = `id, event_id, media_url, media_type, caption, sort_order, uploaded_by, created_at`

func collectItems(rows pgx.Rows) ([]Item, error) {
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.EventID, &item.MediaURL, &item.MediaType,
			&item.Caption, &item.SortOrder, &item.UploadedBy, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create inserts a gallery item and fills generated columns.
func (r *PGRepository) Create(ctx context.Context, item *Item) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO gallery_items (event_id, media_url, media_type, caption, sort_order, uploaded_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		item.EventID, item.MediaURL, item.MediaType, item.Caption, item.SortOrder, item.UploadedBy).
		Scan(&item.ID, &item.CreatedAt)
}

// GetByID fetches one item.
func (r *PGRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM gallery_items WHERE id = $1`, id).
		Scan(&item.ID, &item.EventID, &item.MediaURL, &item.MediaType,
			&item.Caption, &item.SortOrder, &item.UploadedBy, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns all items in display order.
func (r *PGRepository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM gallery_items ORDER BY sort_order, created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

// ListByEvent returns items attached to one event.
func (r *PGRepository) ListByEvent(ctx context.Context, eventID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM gallery_items WHERE event_id = $1 ORDER BY sort_order, created_at DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

var _ Repository = (*PGRepository)(nil)
