// Package profiles manages member profiles, roles, and push token
// registration.
package profiles

import "time"

// Profile is a member profile row.
type Profile struct {
	ID                string          `json:"id"`
	FullName          string          `json:"full_name"`
	AvatarURL         *string         `json:"avatar_url"`
	Phone             *string         `json:"phone"`
	Role              string          `json:"role"`
	NotificationPrefs map[string]bool `json:"notification_prefs"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// UpdatePatch carries partial profile updates. Nil fields are left
// untouched.
type UpdatePatch struct {
	FullName          *string
	Phone             *string
	AvatarURL         *string
	NotificationPrefs map[string]bool
}
