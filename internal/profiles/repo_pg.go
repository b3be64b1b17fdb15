package profiles

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

const profileColumns = `id, full_name, avatar_url, phone, role, notification_prefs, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.Phone, &p.Role, &p.NotificationPrefs, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID fetches a profile.
func (r *PGRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

// Create inserts a profile row.
func (r *PGRepository) Create(ctx context.Context, profile *Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (id, full_name, avatar_url, phone, role, notification_prefs)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		profile.ID, profile.FullName, profile.AvatarURL, profile.Phone, profile.Role, profile.NotificationPrefs)
	return err
}

// Update applies a partial update and returns the fresh row.
func (r *PGRepository) Update(ctx context.Context, id string, patch UpdatePatch) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`UPDATE profiles SET
			full_name          = COALESCE($2, full_name),
			phone              = COALESCE($3, phone),
			avatar_url         = COALESCE($4, avatar_url),
			notification_prefs = COALESCE($5, notification_prefs),
			updated_at         = now()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, patch.FullName, patch.Phone, patch.AvatarURL, patch.NotificationPrefs))
}

// UpdateRole changes a member's role.
func (r *PGRepository) UpdateRole(ctx context.Context, id, role string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RoleOf returns the role column for a user.
func (r *PGRepository) RoleOf(ctx context.Context, id string) (string, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, id).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", shared.ErrNotFound
	}
	return role, err
}

// List returns all profiles ordered by name.
func (r *PGRepository) List(ctx context.Context) ([]Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.Phone, &p.Role, &p.NotificationPrefs, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// SavePushToken upserts an Expo push token for the user.
func (r *PGRepository) SavePushToken(ctx context.Context, userID, token string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO push_tokens (user_id, token)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, token) DO UPDATE SET updated_at = now()`,
		userID, token)
	return err
}

// AllPushTokens returns every registered push token.
func (r *PGRepository) AllPushTokens(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT token FROM push_tokens`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
