// Package blog manages blog posts and their publication state.
package blog

import "time"

// Post is a blog post row.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     *string    `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Category    *string    `json:"category"`
	CoverImage  *string    `json:"cover_image"`
	AuthorID    string     `json:"author_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UpdatePatch carries partial post updates. Nil fields are left
// untouched; PublishedAtSet distinguishes clearing published_at from
// not touching it.
type UpdatePatch struct {
	Title          *string
	Slug           *string
	Content        *string
	Excerpt        *string
	Category       *string
	CoverImage     *string
	Published      *bool
	PublishedAt    *time.Time
	PublishedAtSet bool
}
