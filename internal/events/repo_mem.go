package events

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeyclub/platform/internal/shared"
)

// MemRepository keeps events and RSVPs in process memory. Used when
// STORE_DRIVER=memory and in tests.
type MemRepository struct {
	mu     sync.RWMutex
	events map[string]*Event
	rsvps  map[string]*Rsvp // keyed eventID + "/" + userID
}

// NewMemRepository constructs an empty repository.
func NewMemRepository() *MemRepository {
	return &MemRepository{
		events: make(map[string]*Event),
		rsvps:  make(map[string]*Rsvp),
	}
}

func rsvpKey(eventID, userID string) string {
	return eventID + "/" + userID
}

func (r *MemRepository) Create(_ context.Context, event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *MemRepository) GetByID(_ context.Context, id string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *MemRepository) GetBySlug(_ context.Context, slug string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.events {
		if e.Slug == slug {
			clone := *e
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemRepository) Update(_ context.Context, id string, patch UpdatePatch) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Slug != nil {
		e.Slug = *patch.Slug
	}
	if patch.Description != nil {
		e.Description = patch.Description
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.EventDate != nil {
		e.EventDate = *patch.EventDate
	}
	if patch.LocationName != nil {
		e.LocationName = patch.LocationName
	}
	if patch.LocationLat != nil {
		e.LocationLat = patch.LocationLat
	}
	if patch.LocationLng != nil {
		e.LocationLng = patch.LocationLng
	}
	if patch.CoverImage != nil {
		e.CoverImage = patch.CoverImage
	}
	if patch.MaxParticipants != nil {
		e.MaxParticipants = patch.MaxParticipants
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	e.UpdatedAt = time.Now().UTC()
	clone := *e
	return &clone, nil
}

func (r *MemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.events, id)
	for key, rsvp := range r.rsvps {
		if rsvp.EventID == id {
			delete(r.rsvps, key)
		}
	}
	return nil
}

func (r *MemRepository) OwnerOf(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return e.CreatedBy, nil
}

func (r *MemRepository) List(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.After(events[j].EventDate) })
	return events, nil
}

func (r *MemRepository) Upcoming(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	var events []Event
	for _, e := range r.events {
		if e.Status == StatusUpcoming && e.EventDate.After(now) {
			events = append(events, *e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	return events, nil
}

func (r *MemRepository) RelatedByCategory(_ context.Context, category, excludeID string, limit int) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var events []Event
	for _, e := range r.events {
		if e.Category == category && e.ID != excludeID {
			events = append(events, *e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.After(events[j].EventDate) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *MemRepository) GetRsvp(_ context.Context, eventID, userID string) (*Rsvp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rsvp, ok := r.rsvps[rsvpKey(eventID, userID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *rsvp
	return &clone, nil
}

func (r *MemRepository) InsertRsvp(_ context.Context, rsvp *Rsvp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rsvp.ID == "" {
		rsvp.ID = uuid.NewString()
	}
	rsvp.CreatedAt = time.Now().UTC()
	clone := *rsvp
	r.rsvps[rsvpKey(rsvp.EventID, rsvp.UserID)] = &clone
	return nil
}

func (r *MemRepository) UpdateRsvpStatus(_ context.Context, eventID, userID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rsvp, ok := r.rsvps[rsvpKey(eventID, userID)]
	if !ok {
		return shared.ErrNotFound
	}
	rsvp.Status = status
	return nil
}

func (r *MemRepository) DeleteRsvp(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rsvps, rsvpKey(eventID, userID))
	return nil
}

func (r *MemRepository) AttendingCount(_ context.Context, eventID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == RsvpAttending {
			count++
		}
	}
	return count, nil
}

func (r *MemRepository) RsvpCounts(_ context.Context, eventID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID {
			counts[rsvp.Status]++
		}
	}
	return counts, nil
}

var _ Repository = (*MemRepository)(nil)
