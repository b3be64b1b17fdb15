package authn

import "context"

// Repository defines persistence operations for accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	// CreateWithProfile inserts the account and its member profile
	// atomically.
	CreateWithProfile(ctx context.Context, user *User, fullName string) error
}
