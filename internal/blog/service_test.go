package blog

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
		"admin-1":  "admin",
		"author-1": "member",
		"member-1": "member",
	}}, nil)
	return NewService(guard, repo), repo
}

func TestCreatePostPublishedStampsPublishedAt(t *testing.T) {
	svc, _ := newFixture(t)

	post, _, err := svc.CreatePost(authedContext(t, "author-1"), CreatePostInput{
		Title:     "Ramazan Hazırlıkları",
		Slug:      "ramazan-hazirliklari",
		Published: true,
	})
	require.NoError(t, err)
	assert.True(t, post.Published)
	require.NotNil(t, post.PublishedAt)
	assert.WithinDuration(t, time.Now(), *post.PublishedAt, time.Minute)
}

func TestCreatePostDraftHasNoPublishedAt(t *testing.T) {
	svc, _ := newFixture(t)

	post, _, err := svc.CreatePost(authedContext(t, "author-1"), CreatePostInput{
		Title: "Taslak Yazı",
		Slug:  "taslak-yazi",
	})
	require.NoError(t, err)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)
}

func TestTogglePublish(t *testing.T) {
	svc, _ := newFixture(t)

	post, _, err := svc.CreatePost(authedContext(t, "author-1"), CreatePostInput{
		Title: "Yayın Denemesi",
		Slug:  "yayin-denemesi",
	})
	require.NoError(t, err)

	t.Run("author publishes", func(t *testing.T) {
		published, meta, err := svc.TogglePublish(authedContext(t, "author-1"), post.ID, true)
		require.NoError(t, err)
		assert.True(t, published.Published)
		require.NotNil(t, published.PublishedAt)
		assert.Equal(t, true, meta["published"])
	})

	t.Run("admin unpublishes and clears timestamp", func(t *testing.T) {
		unpublished, _, err := svc.TogglePublish(authedContext(t, "admin-1"), post.ID, false)
		require.NoError(t, err)
		assert.False(t, unpublished.Published)
		assert.Nil(t, unpublished.PublishedAt)
	})

	t.Run("non-author member forbidden", func(t *testing.T) {
		_, _, err := svc.TogglePublish(authedContext(t, "member-1"), post.ID, true)
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeForbidden, actErr.Code)
	})
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, _ := newFixture(t)

	post, _, err := svc.CreatePost(authedContext(t, "author-1"), CreatePostInput{
		Title: "Sahiplik Testi",
		Slug:  "sahiplik-testi",
	})
	require.NoError(t, err)

	title := "Başkasının Düzenlemesi"
	_, _, err = svc.UpdatePost(authedContext(t, "member-1"), UpdatePostInput{
		ID:    post.ID,
		Title: &title,
	})
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeForbidden, actErr.Code)
	assert.Equal(t, action.MsgForbidden, actErr.Message)
}

func TestUpdatePostSanitizesExcerpt(t *testing.T) {
	svc, _ := newFixture(t)

	post, _, err := svc.CreatePost(authedContext(t, "author-1"), CreatePostInput{
		Title: "Özet Testi",
		Slug:  "ozet-testi",
	})
	require.NoError(t, err)

	excerpt := `Kısa & "öz"`
	updated, _, err := svc.UpdatePost(authedContext(t, "author-1"), UpdatePostInput{
		ID:      post.ID,
		Excerpt: &excerpt,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Excerpt)
	assert.Equal(t, "Kısa &amp; &quot;öz&quot;", *updated.Excerpt)
}

func TestDeletePostRequiresAdmin(t *testing.T) {
	svc, repo := newFixture(t)

	post, _, err := svc.CreatePost(authedContext(t, "author-1"), CreatePostInput{
		Title: "Silinecek Yazı",
		Slug:  "silinecek-yazi",
	})
	require.NoError(t, err)

	_, _, err = svc.DeletePost(authedContext(t, "author-1"), post.ID)
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeForbidden, actErr.Code)

	_, _, err = svc.DeletePost(authedContext(t, "admin-1"), post.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := authedContext(t, "author-1")

	_, _, err := svc.CreatePost(ctx, CreatePostInput{Title: "Yayında", Slug: "yayinda", Published: true})
	require.NoError(t, err)
	_, _, err = svc.CreatePost(ctx, CreatePostInput{Title: "Taslak", Slug: "taslak"})
	require.NoError(t, err)

	posts, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Yayında", posts[0].Title)
}
