// Package notifications delivers in-app and push notifications to
// members.
package notifications

import "time"

// Notification types.
const (
	TypeEvent  = "event"
	TypeRsvp   = "rsvp"
	TypeSystem = "system"
	TypeBlog   = "blog"
)

// Notification is one in-app notification row.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   *string   `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
