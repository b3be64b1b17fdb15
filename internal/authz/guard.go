// Package authz resolves the caller's identity and role from the
// current session and enforces authentication, role, and ownership
// preconditions for actions.
package authz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/shared"
)

// Role is the caller's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AuthUser identifies the acting caller. Constructed per pipeline
// invocation and discarded at the end; never cached across calls.
type AuthUser struct {
	ID    string
	Email string
	Role  Role
}

// IsAdmin reports whether the caller holds the admin role.
func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RoleLookup resolves a user's role from the profile store.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// OwnerLookup resolves the owner of a record. Implemented by each
// domain repository.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, recordID string) (string, error)
}

// Guard enforces authorization preconditions.
type Guard struct {
	roles  RoleLookup
	logger *slog.Logger
}

// NewGuard constructs a Guard.
func NewGuard(roles RoleLookup, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{roles: roles, logger: logger}
}

// RequireAuth resolves the caller from the request session. Fails with
// UNAUTHORIZED when no valid session exists. A failed role lookup
// degrades to member rather than failing the action.
func (g *Guard) RequireAuth(ctx context.Context) (*AuthUser, error) {
	sess := shared.SessionFromContext(ctx)
	if sess == nil || sess.User() == "" {
		g.logger.Warn("auth failed: no session")
		return nil, action.Unauthorized()
	}

	role := RoleMember
	if g.roles != nil {
		if r, err := g.roles.RoleOf(ctx, sess.User()); err == nil && Role(r) == RoleAdmin {
			role = RoleAdmin
		}
	}

	return &AuthUser{
		ID:    sess.User(),
		Email: sess.Get(shared.SessionKeyEmail),
		Role:  role,
	}, nil
}

// RequireAdmin resolves the caller and fails with FORBIDDEN unless
// they hold the admin role.
func (g *Guard) RequireAdmin(ctx context.Context) (*AuthUser, error) {
	user, err := g.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if user.Role != RoleAdmin {
		g.logger.Warn("admin access denied", slog.String("user_id", user.ID))
		return nil, action.Forbidden()
	}
	return user, nil
}

// RequireOwnership fails with NOT_FOUND when the record is missing and
// FORBIDDEN when the stored owner differs from the caller.
func (g *Guard) RequireOwnership(ctx context.Context, owners OwnerLookup, recordID, callerID string) error {
	ownerID, err := owners.OwnerOf(ctx, recordID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return action.NotFound()
		}
		return err
	}
	if ownerID != callerID {
		g.logger.Warn("ownership check failed",
			slog.String("record_id", recordID), slog.String("user_id", callerID))
		return action.Forbidden()
	}
	return nil
}

// OptionalAuth resolves the caller when a session exists, nil
// otherwise. Never used to gate a mutation.
func (g *Guard) OptionalAuth(ctx context.Context) *AuthUser {
	user, err := g.RequireAuth(ctx)
	if err != nil {
		return nil
	}
	return user
}
