package blog

import (
	"context"
	"time"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/validate"
)

// Service wraps blog business rules.
type Service struct {
	guard *authz.Guard
	repo  Repository
	now   func() time.Time
}

// NewService constructs a Service.
func NewService(guard *authz.Guard, repo Repository) *Service {
	return &Service{guard: guard, repo: repo, now: time.Now}
}

// CreatePostInput carries a new blog post.
type CreatePostInput struct {
	Title      string  `json:"title" validate:"required,min=3" msg:"Başlık en az 3 karakter olmalı"`
	Slug       string  `json:"slug" validate:"required,min=3,slug" msg:"Slug en az 3 karakter olmalı"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	Category   *string `json:"category"`
	CoverImage *string `json:"cover_image"`
	Published  bool    `json:"published"`
}

// CreatePost creates a post authored by the caller. Publishing at
// creation stamps published_at.
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (*Post, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	post := &Post{
		Title:      sanitize.Text(input.Title),
		Slug:       input.Slug,
		Content:    input.Content,
		Excerpt:    sanitize.TextPtr(input.Excerpt),
		Category:   input.Category,
		CoverImage: input.CoverImage,
		AuthorID:   user.ID,
		Published:  input.Published,
	}
	if input.Published {
		now := s.now().UTC()
		post.PublishedAt = &now
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, map[string]any{"post_id": post.ID, "user_id": user.ID}, nil
}

// UpdatePostInput carries a partial post update.
type UpdatePostInput struct {
	ID         string  `json:"id" validate:"required,uuid" msg:"Geçersiz yazı."`
	Title      *string `json:"title" validate:"omitempty,min=3" msg:"Başlık en az 3 karakter olmalı"`
	Slug       *string `json:"slug" validate:"omitempty,min=3,slug" msg:"Slug en az 3 karakter olmalı"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	Category   *string `json:"category"`
	CoverImage *string `json:"cover_image"`
	Published  *bool   `json:"published"`
}

// UpdatePost updates a post. Non-admins must be the author. A
// published transition stamps or clears published_at.
func (s *Service) UpdatePost(ctx context.Context, input UpdatePostInput) (*Post, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}
	if !user.IsAdmin() {
		if err := s.guard.RequireOwnership(ctx, s.repo, input.ID, user.ID); err != nil {
			return nil, nil, err
		}
	}

	patch := UpdatePatch{
		Title:      sanitize.TextPtr(input.Title),
		Slug:       input.Slug,
		Content:    input.Content,
		Excerpt:    sanitize.TextPtr(input.Excerpt),
		Category:   input.Category,
		CoverImage: input.CoverImage,
		Published:  input.Published,
	}
	if input.Published != nil {
		patch.PublishedAtSet = true
		if *input.Published {
			now := s.now().UTC()
			patch.PublishedAt = &now
		}
	}
	post, err := s.repo.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, nil, err
	}
	return post, map[string]any{"post_id": input.ID, "user_id": user.ID}, nil
}

// DeletePost removes a post. Admin only.
func (s *Service) DeletePost(ctx context.Context, postID string) (action.Void, map[string]any, error) {
	user, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return action.Void{}, nil, err
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return action.Void{}, nil, err
	}
	return action.Void{}, map[string]any{"post_id": postID, "user_id": user.ID}, nil
}

// TogglePublish flips publication state. Allowed for admins and the
// post's author; publishing stamps published_at, unpublishing clears it.
func (s *Service) TogglePublish(ctx context.Context, postID string, published bool) (*Post, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsAdmin() {
		if err := s.guard.RequireOwnership(ctx, s.repo, postID, user.ID); err != nil {
			return nil, nil, err
		}
	}

	patch := UpdatePatch{
		Published:      &published,
		PublishedAtSet: true,
	}
	if published {
		now := s.now().UTC()
		patch.PublishedAt = &now
	}
	post, err := s.repo.Update(ctx, postID, patch)
	if err != nil {
		return nil, nil, err
	}
	meta := map[string]any{
		"post_id":   postID,
		"published": published,
		"user_id":   user.ID,
	}
	return post, meta, nil
}

// ListPublished returns published posts for the public site.
func (s *Service) ListPublished(ctx context.Context) ([]Post, error) {
	return s.repo.ListPublished(ctx)
}

// BySlug returns one post.
func (s *Service) BySlug(ctx context.Context, slug string) (*Post, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// ListAll returns every post. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}
