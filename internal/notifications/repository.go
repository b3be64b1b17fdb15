package notifications

import "context"

// Repository defines persistence operations for the notifications
// module.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, batch []Notification) error
	// MarkRead flips one notification read if it belongs to userID.
	// Rows of other users are left untouched without error.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
}
