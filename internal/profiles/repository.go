package profiles

import "context"

// Repository defines persistence operations for the profiles module.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, id string, patch UpdatePatch) (*Profile, error)
	UpdateRole(ctx context.Context, id, role string) error
	RoleOf(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]Profile, error)
	SavePushToken(ctx context.Context, userID, token string) error
	AllPushTokens(ctx context.Context) ([]string, error)
}
