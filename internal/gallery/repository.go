package gallery

import "context"

// Repository defines persistence operations for the gallery module.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Item, error)
	ListByEvent(ctx context.Context, eventID string) ([]Item, error)
}
