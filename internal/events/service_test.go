package events

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/shared"
)

type fixedRoles struct {
	roles map[string]string
}

func (f *fixedRoles) RoleOf(_ context.Context, userID string) (string, error) {
	return f.roles[userID], nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	sm := shared.NewSessionManager(nil, "yeyclub_session", "test-secret", time.Hour, false)
	req := httptest.NewRequest("GET", "/", nil)
	sess, err := sm.Load(req.Context(), req)
	require.NoError(t, err)
	sess.SetUser(userID)
	return shared.ContextWithSession(context.Background(), sess)
}

func newFixture(t *testing.T) (*Service, *MemRepository) {
	t.Helper()
	repo := NewMemRepository()
	guard := authz.NewGuard(&fixedRoles{roles: map[string]string{
		"admin-1": "admin",
		"owner-1": "member",
		"guest-1": "member",
		"u-1":     "member",
		"u-2":     "member",
		"u-3":     "member",
	}}, nil)
	return NewService(guard, repo), repo
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func validCreateInput() CreateEventInput {
	return CreateEventInput{
		Title:     "Çorba Dağıtımı",
		Slug:      "corba-dagitimi",
		Category:  CategoryCorba,
		EventDate: time.Now().Add(72 * time.Hour),
	}
}

func TestCreateEventRequiresAdmin(t *testing.T) {
	svc, _ := newFixture(t)

	_, _, err := svc.CreateEvent(authedContext(t, "guest-1"), validCreateInput())
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeForbidden, actErr.Code)
}

func TestCreateEventStoresSanitizedTitle(t *testing.T) {
	svc, repo := newFixture(t)

	input := validCreateInput()
	input.Title = `<script>alert("x")</script>`

	event, _, err := svc.CreateEvent(authedContext(t, "admin-1"), input)
	require.NoError(t, err)
	assert.Equal(t, "&lt;script&gt;alert(&quot;x&quot;)&lt;&#x2F;script&gt;", event.Title)

	stored, err := repo.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Title, "<")
	assert.NotContains(t, stored.Title, ">")
	assert.NotContains(t, stored.Title, `"`)
}

func TestCreateEventRejectsBadSlug(t *testing.T) {
	svc, _ := newFixture(t)

	input := validCreateInput()
	input.Slug = "Corba Dagitimi!"

	_, _, err := svc.CreateEvent(authedContext(t, "admin-1"), input)
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeValidation, actErr.Code)
}

func TestUpdateEventOwnership(t *testing.T) {
	svc, repo := newFixture(t)

	event := &Event{
		Title:     "İftar Programı",
		Slug:      "iftar-programi",
		Category:  CategoryIftar,
		EventDate: time.Now().Add(24 * time.Hour),
		Status:    StatusUpcoming,
		CreatedBy: "owner-1",
	}
	require.NoError(t, repo.Create(context.Background(), event))

	t.Run("owner updates", func(t *testing.T) {
		updated, _, err := svc.UpdateEvent(authedContext(t, "owner-1"), UpdateEventInput{
			ID:    event.ID,
			Title: strPtr("İftar Programı 2026"),
		})
		require.NoError(t, err)
		assert.Equal(t, "İftar Programı 2026", updated.Title)
	})

	t.Run("non-owner member forbidden even with valid payload", func(t *testing.T) {
		_, _, err := svc.UpdateEvent(authedContext(t, "guest-1"), UpdateEventInput{
			ID:    event.ID,
			Title: strPtr("Sahte Güncelleme"),
		})
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeForbidden, actErr.Code)
		assert.Equal(t, action.MsgForbidden, actErr.Message)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		updated, _, err := svc.UpdateEvent(authedContext(t, "admin-1"), UpdateEventInput{
			ID:    event.ID,
			Title: strPtr("Yönetici Güncellemesi"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Yönetici Güncellemesi", updated.Title)
	})

	t.Run("missing record not found", func(t *testing.T) {
		_, _, err := svc.UpdateEvent(authedContext(t, "guest-1"), UpdateEventInput{
			ID: "2e9b13fa-59e2-4f53-9a40-0a1dd7f0ab10",
		})
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeNotFound, actErr.Code)
	})
}

func TestUpsertRsvpCapacity(t *testing.T) {
	svc, repo := newFixture(t)

	event := &Event{
		Title:           "Sınırlı Etkinlik",
		Slug:            "sinirli-etkinlik",
		Category:        CategoryEglence,
		EventDate:       time.Now().Add(48 * time.Hour),
		Status:          StatusUpcoming,
		MaxParticipants: intPtr(2),
		CreatedBy:       "admin-1",
	}
	require.NoError(t, repo.Create(context.Background(), event))

	attend := func(userID string) (RsvpResult, error) {
		res, _, err := svc.UpsertRsvp(authedContext(t, userID), UpsertRsvpInput{
			EventID: event.ID,
			Status:  RsvpAttending,
		})
		return res, err
	}

	// First two attendees fill the quota.
	_, err := attend("u-1")
	require.NoError(t, err)
	_, err = attend("u-2")
	require.NoError(t, err)

	// Third attending registration is rejected.
	_, err = attend("u-3")
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeCapacityFull, actErr.Code)
	assert.Equal(t, MsgCapacityFull, actErr.Message)
	assert.Equal(t, 409, actErr.StatusCode)

	// A maybe registration still succeeds at full capacity.
	res, _, err := svc.UpsertRsvp(authedContext(t, "u-3"), UpsertRsvpInput{
		EventID: event.ID,
		Status:  RsvpMaybe,
	})
	require.NoError(t, err)
	assert.Equal(t, RsvpMaybe, res.Status)

	// An existing attendee may change status without a capacity check.
	res, _, err = svc.UpsertRsvp(authedContext(t, "u-1"), UpsertRsvpInput{
		EventID: event.ID,
		Status:  RsvpDeclined,
	})
	require.NoError(t, err)
	assert.Equal(t, RsvpDeclined, res.Status)

	counts, err := repo.RsvpCounts(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[RsvpAttending])
	assert.Equal(t, 1, counts[RsvpMaybe])
	assert.Equal(t, 1, counts[RsvpDeclined])
}

func TestDeleteRsvpOnlyTouchesCaller(t *testing.T) {
	svc, repo := newFixture(t)

	event := &Event{
		Title:     "Açık Etkinlik",
		Slug:      "acik-etkinlik",
		Category:  CategoryDiger,
		EventDate: time.Now().Add(24 * time.Hour),
		Status:    StatusUpcoming,
		CreatedBy: "admin-1",
	}
	require.NoError(t, repo.Create(context.Background(), event))

	for _, userID := range []string{"u-1", "u-2"} {
		_, _, err := svc.UpsertRsvp(authedContext(t, userID), UpsertRsvpInput{
			EventID: event.ID,
			Status:  RsvpAttending,
		})
		require.NoError(t, err)
	}

	_, _, err := svc.DeleteRsvp(authedContext(t, "u-1"), event.ID)
	require.NoError(t, err)

	count, err := repo.AttendingCount(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBySlugReturnsCounts(t *testing.T) {
	svc, repo := newFixture(t)

	event := &Event{
		Title:     "Eğlence Gecesi",
		Slug:      "eglence-gecesi",
		Category:  CategoryEglence,
		EventDate: time.Now().Add(24 * time.Hour),
		Status:    StatusUpcoming,
		CreatedBy: "admin-1",
	}
	require.NoError(t, repo.Create(context.Background(), event))
	_, _, err := svc.UpsertRsvp(authedContext(t, "u-1"), UpsertRsvpInput{
		EventID: event.ID,
		Status:  RsvpAttending,
	})
	require.NoError(t, err)

	got, counts, err := svc.BySlug(context.Background(), "eglence-gecesi")
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, 1, counts[RsvpAttending])
}
