// Package events manages community events and RSVP registrations.
package events

import "time"

// Event categories.
const (
	CategoryCorba   = "corba"
	CategoryIftar   = "iftar"
	CategoryEglence = "eglence"
	CategoryDiger   = "diger"
)

// Event statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Event is a community event row.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description"`
	Category        string    `json:"category"`
	EventDate       time.Time `json:"event_date"`
	LocationName    *string   `json:"location_name"`
	LocationLat     *float64  `json:"location_lat"`
	LocationLng     *float64  `json:"location_lng"`
	CoverImage      *string   `json:"cover_image"`
	MaxParticipants *int      `json:"max_participants"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Rsvp is a member's registration for an event.
type Rsvp struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RSVP statuses.
const (
	RsvpAttending = "attending"
	RsvpMaybe     = "maybe"
	RsvpDeclined  = "declined"
)

// UpdatePatch carries partial event updates. Nil fields are left
// untouched.
type UpdatePatch struct {
	Title           *string
	Slug            *string
	Description     *string
	Category        *string
	EventDate       *time.Time
	LocationName    *string
	LocationLat     *float64
	LocationLng     *float64
	CoverImage      *string
	MaxParticipants *int
	Status          *string
}
