package blog

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

const postColumns = `id, title, slug, content, excerpt, category, cover_image, author_id,
	published, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Category,
		&p.CoverImage, &p.AuthorID, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]Post, error) {
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Category,
			&p.CoverImage, &p.AuthorID, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Create inserts a post and fills generated columns.
func (r *PGRepository) Create(ctx context.Context, post *Post) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO blog_posts (title, slug, content, excerpt, category, cover_image,
			author_id, published, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		post.Title, post.Slug, post.Content, post.Excerpt, post.Category, post.CoverImage,
		post.AuthorID, post.Published, post.PublishedAt).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

// GetByID fetches a post.
func (r *PGRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
}

// GetBySlug fetches a post by slug.
func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1`, slug))
}

// Update applies a partial update and returns the fresh row. The
// published_at column is written only when the patch marks it set.
func (r *PGRepository) Update(ctx context.Context, id string, patch UpdatePatch) (*Post, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`UPDATE blog_posts SET
			title        = COALESCE($2, title),
			slug         = COALESCE($3, slug),
			content      = COALESCE($4, content),
			excerpt      = COALESCE($5, excerpt),
			category     = COALESCE($6, category),
			cover_image  = COALESCE($7, cover_image),
			published    = COALESCE($8, published),
			published_at = CASE WHEN $9 THEN $10 ELSE published_at END,
			updated_at   = now()
		 WHERE id = $1
		 RETURNING `+postColumns,
		id, patch.Title, patch.Slug, patch.Content, patch.Excerpt, patch.Category,
		patch.CoverImage, patch.Published, patch.PublishedAtSet, patch.PublishedAt))
}

// Delete removes a post.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// OwnerOf returns the author of a post.
func (r *PGRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	var author string
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM blog_posts WHERE id = $1`, id).Scan(&author)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", shared.ErrNotFound
	}
	return author, err
}

// ListPublished returns published posts, newest first.
func (r *PGRepository) ListPublished(ctx context.Context) ([]Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE published ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListAll returns every post for the admin panel.
func (r *PGRepository) ListAll(ctx context.Context) ([]Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

var _ Repository = (*PGRepository)(nil)
