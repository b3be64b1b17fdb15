package gallery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeyclub/platform/internal/shared"
)

// MemRepository is an in-memory store for tests and local runs.
type MemRepository struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewMemRepository constructs an empty store.
func NewMemRepository() *MemRepository {
	return &MemRepository{items: map[string]Item{}}
}

func (r *MemRepository) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *MemRepository) GetByID(_ context.Context, id string) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := item
	return &clone, nil
}

func (r *MemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemRepository) List(_ context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (r *MemRepository) ListByEvent(_ context.Context, eventID string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []Item
	for _, item := range r.items {
		if item.EventID != nil && *item.EventID == eventID {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items, nil
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

var _ Repository = (*MemRepository)(nil)
