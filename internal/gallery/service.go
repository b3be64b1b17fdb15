package gallery

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/storage"
	"github.com/yeyclub/platform/internal/validate"
)

// Service wraps gallery business rules.
type Service struct {
	guard *authz.Guard
	repo  Repository
	store storage.ObjectStore
}

// NewService constructs a Service.
func NewService(guard *authz.Guard, repo Repository, store storage.ObjectStore) *Service {
	return &Service{guard: guard, repo: repo, store: store}
}

// CreateItemInput carries a new gallery item.
type CreateItemInput struct {
	EventID   *string `json:"event_id" validate:"omitempty,uuid" msg:"Geçersiz etkinlik."`
	MediaURL  string  `json:"media_url" validate:"required,url" msg:"Geçerli bir URL giriniz"`
	MediaType string  `json:"media_type" validate:"required,oneof=image video" msg:"Geçersiz medya türü."`
	Caption   *string `json:"caption"`
	SortOrder int     `json:"sort_order"`
}

// CreateItem records a media item uploaded by the caller.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*Item, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Input(&input); err != nil {
		return nil, nil, err
	}

	item := &Item{
		EventID:    input.EventID,
		MediaURL:   input.MediaURL,
		MediaType:  input.MediaType,
		Caption:    sanitize.TextPtr(input.Caption),
		SortOrder:  input.SortOrder,
		UploadedBy: user.ID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, nil, err
	}
	return item, map[string]any{"item_id": item.ID, "user_id": user.ID}, nil
}

// DeleteItem removes an item. Admin only. The stored object is kept;
// item rows can point at external URLs the platform does not own.
func (s *Service) DeleteItem(ctx context.Context, itemID string) (action.Void, map[string]any, error) {
	user, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return action.Void{}, nil, err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return action.Void{}, nil, err
	}
	return action.Void{}, map[string]any{"item_id": itemID, "user_id": user.ID}, nil
}

// UploadResult is the response of a media upload.
type UploadResult struct {
	URL string `json:"url"`
}

// Upload stores a media file and returns its public URL. The object key
// is date-prefixed so bucket listings stay browsable.
func (s *Service) Upload(ctx context.Context, filename, contentType string, body io.Reader) (*UploadResult, map[string]any, error) {
	user, err := s.guard.RequireAuth(ctx)
	if err != nil {
		return nil, nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return nil, nil, action.NewError("Sadece görsel ve video dosyaları yüklenebilir.", action.CodeUnsupportedMedia, http.StatusBadRequest)
	}

	key := fmt.Sprintf("gallery/%s/%s%s", time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)
	url, err := s.store.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, nil, err
	}
	meta := map[string]any{"key": key, "user_id": user.ID}
	return &UploadResult{URL: url}, meta, nil
}

// List returns every gallery item.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// ListByEvent returns items attached to one event.
func (s *Service) ListByEvent(ctx context.Context, eventID string) ([]Item, error) {
	return s.repo.ListByEvent(ctx, eventID)
}
