package blog

import "context"

// Repository defines persistence operations for the blog module.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (*Post, error)
	Delete(ctx context.Context, id string) error
	// OwnerOf returns the author_id column; satisfies authz.OwnerLookup.
	OwnerOf(ctx context.Context, id string) (string, error)

	ListPublished(ctx context.Context) ([]Post, error)
	ListAll(ctx context.Context) ([]Post, error)
}
