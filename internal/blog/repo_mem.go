package blog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeyclub/platform/internal/shared"
)

// MemRepository keeps posts in process memory. Used when
// STORE_DRIVER=memory and in tests.
type MemRepository struct {
	mu    sync.RWMutex
	posts map[string]*Post
}

// NewMemRepository constructs an empty repository.
func NewMemRepository() *MemRepository {
	return &MemRepository{posts: make(map[string]*Post)}
}

func (r *MemRepository) Create(_ context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *MemRepository) GetByID(_ context.Context, id string) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemRepository) Update(_ context.Context, id string, patch UpdatePatch) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Content != nil {
		p.Content = patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = patch.Excerpt
	}
	if patch.Category != nil {
		p.Category = patch.Category
	}
	if patch.CoverImage != nil {
		p.CoverImage = patch.CoverImage
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	if patch.PublishedAtSet {
		p.PublishedAt = patch.PublishedAt
	}
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (r *MemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemRepository) OwnerOf(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return p.AuthorID, nil
}

func (r *MemRepository) ListPublished(_ context.Context) ([]Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var posts []Post
	for _, p := range r.posts {
		if p.Published {
			posts = append(posts, *p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		var ti, tj time.Time
		if posts[i].PublishedAt != nil {
			ti = *posts[i].PublishedAt
		}
		if posts[j].PublishedAt != nil {
			tj = *posts[j].PublishedAt
		}
		return ti.After(tj)
	})
	return posts, nil
}

func (r *MemRepository) ListAll(_ context.Context) ([]Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

var _ Repository = (*MemRepository)(nil)
