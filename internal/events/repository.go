package events

import "context"

// Repository defines persistence operations for the events module.
type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (*Event, error)
	Delete(ctx context.Context, id string) error
	// OwnerOf returns the created_by column; satisfies authz.OwnerLookup.
	OwnerOf(ctx context.Context, id string) (string, error)

	List(ctx context.Context) ([]Event, error)
	Upcoming(ctx context.Context) ([]Event, error)
	RelatedByCategory(ctx context.Context, category, excludeID string, limit int) ([]Event, error)

	GetRsvp(ctx context.Context, eventID, userID string) (*Rsvp, error)
	InsertRsvp(ctx context.Context, rsvp *Rsvp) error
	UpdateRsvpStatus(ctx context.Context, eventID, userID, status string) error
	DeleteRsvp(ctx context.Context, eventID, userID string) error
	AttendingCount(ctx context.Context, eventID string) (int, error)
	RsvpCounts(ctx context.Context, eventID string) (map[string]int, error)
}
