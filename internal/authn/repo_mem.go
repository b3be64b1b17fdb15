package authn

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeyclub/platform/internal/profiles"
	"github.com/yeyclub/platform/internal/shared"
)

// ProfileStore is the profile insert performed alongside account
// creation. Satisfied by *profiles.MemRepository.
type ProfileStore interface {
	Create(ctx context.Context, profile *profiles.Profile) error
}

// MemRepository is an in-memory account store for tests and local runs.
type MemRepository struct {
	mu       sync.RWMutex
	byEmail  map[string]User
	profiles ProfileStore
}

// NewMemRepository constructs an empty store writing profiles through
// store.
func NewMemRepository(store ProfileStore) *MemRepository {
	return &MemRepository{byEmail: map[string]User{}, profiles: store}
}

func (r *MemRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := user
	return &clone, nil
}

func (r *MemRepository) CreateWithProfile(ctx context.Context, user *User, fullName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("authn: account %q already exists", user.Email)
	}

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.profiles.Create(ctx, &profiles.Profile{
		ID:       user.ID,
		FullName: fullName,
		Role:     "member",
	}); err != nil {
		return err
	}
	r.byEmail[user.Email] = *user
	return nil
}

var _ Repository = (*MemRepository)(nil)
