// Package authn implements credential based login, registration, and
// logout. Authorization lives in internal/authz; this package only
// establishes who the caller is.
package authn

import "time"

// User is a credential account. The profile row shares its ID.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
