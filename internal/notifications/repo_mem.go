package notifications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepository is an in-memory store for tests and local runs.
type MemRepository struct {
	mu    sync.RWMutex
	items map[string]Notification
}

// NewMemRepository constructs an empty store.
func NewMemRepository() *MemRepository {
	return &MemRepository{items: map[string]Notification{}}
}

func (r *MemRepository) Create(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(n)
	return nil
}

func (r *MemRepository) CreateBatch(_ context.Context, batch []Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range batch {
		r.insertLocked(&batch[i])
	}
	return nil
}

func (r *MemRepository) insertLocked(n *Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.items[n.ID] = *n
}

func (r *MemRepository) MarkRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return nil
	}
	n.Read = true
	r.items[id] = n
	return nil
}

func (r *MemRepository) MarkAllRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.items {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.items[id] = n
		}
	}
	return nil
}

func (r *MemRepository) ListByUser(_ context.Context, userID string) ([]Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []Notification
	for _, n := range r.items {
		if n.UserID == userID {
			items = append(items, n)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *MemRepository) UnreadCount(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

var _ Repository = (*MemRepository)(nil)
