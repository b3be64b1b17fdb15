package authz

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/shared"
)

type stubRoles struct {
	roles map[string]string
	err   error
}

func (s *stubRoles) RoleOf(_ context.Context, userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.roles[userID], nil
}

type stubOwners struct {
	owners map[string]string
}

func (s *stubOwners) OwnerOf(_ context.Context, recordID string) (string, error) {
	owner, ok := s.owners[recordID]
	if !ok {
		return "", shared.ErrNotFound
	}
	return owner, nil
}

func sessionContext(t *testing.T, userID, email string) context.Context {
	t.Helper()
	sm := shared.NewSessionManager(nil, "yeyclub_session", "test-secret", time.Hour, false)
	req := httptest.NewRequest("GET", "/", nil)
	sess, err := sm.Load(req.Context(), req)
	require.NoError(t, err)
	if userID != "" {
		sess.SetUser(userID)
		sess.Set(shared.SessionKeyEmail, email)
	}
	return shared.ContextWithSession(context.Background(), sess)
}

func TestRequireAuthWithoutSession(t *testing.T) {
	guard := NewGuard(&stubRoles{}, nil)

	_, err := guard.RequireAuth(context.Background())
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeUnauthorized, actErr.Code)
	assert.Equal(t, action.MsgUnauthorized, actErr.Message)
}

func TestRequireAuthAnonymousSession(t *testing.T) {
	guard := NewGuard(&stubRoles{}, nil)
	ctx := sessionContext(t, "", "")

	_, err := guard.RequireAuth(ctx)
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeUnauthorized, actErr.Code)
}

func TestRequireAuthResolvesRole(t *testing.T) {
	guard := NewGuard(&stubRoles{roles: map[string]string{"u-1": "admin"}}, nil)
	ctx := sessionContext(t, "u-1", "admin@yeyclub.com")

	user, err := guard.RequireAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "admin@yeyclub.com", user.Email)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestRequireAuthRoleLookupFailureDefaultsToMember(t *testing.T) {
	guard := NewGuard(&stubRoles{err: errors.New("profiles unavailable")}, nil)
	ctx := sessionContext(t, "u-1", "user@yeyclub.com")

	user, err := guard.RequireAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, user.Role)
	assert.False(t, user.IsAdmin())
}

func TestRequireAdmin(t *testing.T) {
	guard := NewGuard(&stubRoles{roles: map[string]string{
		"u-admin":  "admin",
		"u-member": "member",
	}}, nil)

	t.Run("admin passes", func(t *testing.T) {
		user, err := guard.RequireAdmin(sessionContext(t, "u-admin", "a@yeyclub.com"))
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, user.Role)
	})

	t.Run("member rejected", func(t *testing.T) {
		_, err := guard.RequireAdmin(sessionContext(t, "u-member", "m@yeyclub.com"))
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeForbidden, actErr.Code)
		assert.Equal(t, action.MsgForbidden, actErr.Message)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := guard.RequireAdmin(context.Background())
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeUnauthorized, actErr.Code)
	})
}

func TestRequireOwnership(t *testing.T) {
	guard := NewGuard(&stubRoles{}, nil)
	owners := &stubOwners{owners: map[string]string{"post-1": "u-1"}}

	t.Run("owner passes", func(t *testing.T) {
		err := guard.RequireOwnership(context.Background(), owners, "post-1", "u-1")
		assert.NoError(t, err)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		err := guard.RequireOwnership(context.Background(), owners, "post-1", "u-2")
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeForbidden, actErr.Code)
	})

	t.Run("missing record not found", func(t *testing.T) {
		err := guard.RequireOwnership(context.Background(), owners, "post-404", "u-1")
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeNotFound, actErr.Code)
		assert.Equal(t, action.MsgNotFound, actErr.Message)
	})
}

func TestOptionalAuth(t *testing.T) {
	guard := NewGuard(&stubRoles{}, nil)

	assert.Nil(t, guard.OptionalAuth(context.Background()))

	user := guard.OptionalAuth(sessionContext(t, "u-1", "u@yeyclub.com"))
	require.NotNil(t, user)
	assert.Equal(t, "u-1", user.ID)
}
