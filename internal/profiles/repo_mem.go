package profiles

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yeyclub/platform/internal/shared"
)

// MemRepository keeps profiles in process memory. Used when
// STORE_DRIVER=memory and in tests.
type MemRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	tokens   map[string]map[string]struct{}
}

// NewMemRepository constructs an empty repository.
func NewMemRepository() *MemRepository {
	return &MemRepository{
		profiles: make(map[string]*Profile),
		tokens:   make(map[string]map[string]struct{}),
	}
}

func (r *MemRepository) GetByID(_ context.Context, id string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemRepository) Create(_ context.Context, profile *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	clone := *profile
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.profiles[clone.ID] = &clone
	return nil
}

func (r *MemRepository) Update(_ context.Context, id string, patch UpdatePatch) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	if patch.NotificationPrefs != nil {
		p.NotificationPrefs = patch.NotificationPrefs
	}
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (r *MemRepository) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Role = role
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemRepository) RoleOf(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return p.Role, nil
}

func (r *MemRepository) List(_ context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].FullName < profiles[j].FullName })
	return profiles, nil
}

func (r *MemRepository) SavePushToken(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tokens[userID] == nil {
		r.tokens[userID] = make(map[string]struct{})
	}
	r.tokens[userID][token] = struct{}{}
	return nil
}

func (r *MemRepository) AllPushTokens(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tokens []string
	for _, set := range r.tokens {
		for token := range set {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)
	return tokens, nil
}

var _ Repository = (*MemRepository)(nil)
