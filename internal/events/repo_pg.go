package events

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

const eventColumns = `id, title, slug, description, category, event_date, location_name,
	location_lat, location_lng, cover_image, max_participants, status, created_by,
	created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.Category, &e.EventDate,
		&e.LocationName, &e.LocationLat, &e.LocationLng, &e.CoverImage, &e.MaxParticipants,
		&e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()
	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Slug, &e.Description, &e.Category, &e.EventDate,
			&e.LocationName, &e.LocationLat, &e.LocationLng, &e.CoverImage, &e.MaxParticipants,
			&e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create inserts an event and fills generated columns.
func (r *PGRepository) Create(ctx context.Context, event *Event) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO events (title, slug, description, category, event_date, location_name,
			location_lat, location_lng, cover_image, max_participants, status, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		event.Title, event.Slug, event.Description, event.Category, event.EventDate,
		event.LocationName, event.LocationLat, event.LocationLng, event.CoverImage,
		event.MaxParticipants, event.Status, event.CreatedBy).
		Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

// GetByID fetches an event.
func (r *PGRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	return scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

// GetBySlug fetches an event by its slug.
func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*Event, error) {
	return scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug))
}

// Update applies a partial update and returns the fresh row.
func (r *PGRepository) Update(ctx context.Context, id string, patch UpdatePatch) (*Event, error) {
	return scanEvent(r.pool.QueryRow(ctx,
		`UPDATE events SET
			title            = COALESCE($2, title),
			slug             = COALESCE($3, slug),
			description      = COALESCE($4, description),
			category         = COALESCE($5, category),
			event_date       = COALESCE($6, event_date),
			location_name    = COALESCE($7, location_name),
			location_lat     = COALESCE($8, location_lat),
			location_lng     = COALESCE($9, location_lng),
			cover_image      = COALESCE($10, cover_image),
			max_participants = COALESCE($11, max_participants),
			status           = COALESCE($12, status),
			updated_at       = now()
		 WHERE id = $1
		 RETURNING `+eventColumns,
		id, patch.Title, patch.Slug, patch.Description, patch.Category, patch.EventDate,
		patch.LocationName, patch.LocationLat, patch.LocationLng, patch.CoverImage,
		patch.MaxParticipants, patch.Status))
}

// Delete removes an event.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// OwnerOf returns the creator of an event.
func (r *PGRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.pool.QueryRow(ctx, `SELECT created_by FROM events WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", shared.ErrNotFound
	}
	return owner, err
}

// List returns all events, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY event_date DESC`)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// Upcoming returns events that have not started yet, soonest first.
func (r *PGRepository) Upcoming(ctx context.Context) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE event_date >= now() AND status = 'upcoming'
		 ORDER BY event_date ASC`)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// RelatedByCategory returns other events in the same category.
func (r *PGRepository) RelatedByCategory(ctx context.Context, category, excludeID string, limit int) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE category = $1 AND id <> $2
		 ORDER BY event_date DESC
		 LIMIT $3`, category, excludeID, limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// GetRsvp fetches a member's RSVP for an event.
func (r *PGRepository) GetRsvp(ctx context.Context, eventID, userID string) (*Rsvp, error) {
	var rsvp Rsvp
	err := r.pool.QueryRow(ctx,
		`SELECT id, event_id, user_id, status, created_at
		 FROM event_rsvps WHERE event_id = $1 AND user_id = $2`, eventID, userID).
		Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// InsertRsvp creates a new RSVP row.
func (r *PGRepository) InsertRsvp(ctx context.Context, rsvp *Rsvp) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO event_rsvps (event_id, user_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		rsvp.EventID, rsvp.UserID, rsvp.Status).
		Scan(&rsvp.ID, &rsvp.CreatedAt)
}

// UpdateRsvpStatus changes an existing RSVP.
func (r *PGRepository) UpdateRsvpStatus(ctx context.Context, eventID, userID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE event_rsvps SET status = $3 WHERE event_id = $1 AND user_id = $2`,
		eventID, userID, status)
	return err
}

// DeleteRsvp removes a member's RSVP.
func (r *PGRepository) DeleteRsvp(ctx context.Context, eventID, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM event_rsvps WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	return err
}

// AttendingCount counts attending RSVPs for an event.
func (r *PGRepository) AttendingCount(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM event_rsvps WHERE event_id = $1 AND status = 'attending'`, eventID).
		Scan(&count)
	return count, err
}

// RsvpCounts returns per-status RSVP counts for an event.
func (r *PGRepository) RsvpCounts(ctx context.Context, eventID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, count(*) FROM event_rsvps WHERE event_id = $1 GROUP BY status`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
