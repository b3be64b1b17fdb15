package gallery

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/shared"
	"github.com/yeyclub/platform/internal/storage"
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

func newFixture(t *testing.T) (*Service, *MemRepository, *storage.MemoryStore) {
	t.Helper()
	repo := NewMemRepository()
	store := storage.NewMemoryStore("http://localhost:8080")
	guard := authz.NewGuard(&fixedRoles{roles: map[string]string{
		"admin-1":  "admin",
		"member-1": "member",
	}}, nil)
	return NewService(guard, repo, store), repo, store
}

func TestCreateItem(t *testing.T) {
	svc, _, _ := newFixture(t)

	caption := `İftar <yemeği>`
	item, meta, err := svc.CreateItem(authedContext(t, "member-1"), CreateItemInput{
		MediaURL:  "https://storage.googleapis.com/yeyclub/gallery/iftar.jpg",
		MediaType: MediaImage,
		Caption:   &caption,
	})
	require.NoError(t, err)
	assert.Equal(t, "member-1", item.UploadedBy)
	require.NotNil(t, item.Caption)
	assert.Equal(t, "İftar &lt;yemeği&gt;", *item.Caption)
	assert.Equal(t, item.ID, meta["item_id"])
}

func TestCreateItemRejectsBadInput(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := authedContext(t, "member-1")

	t.Run("missing url", func(t *testing.T) {
		_, _, err := svc.CreateItem(ctx, CreateItemInput{MediaType: MediaImage})
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, "Geçerli bir URL giriniz", actErr.Message)
	})

	t.Run("unknown media type", func(t *testing.T) {
		_, _, err := svc.CreateItem(ctx, CreateItemInput{
			MediaURL:  "https://example.com/a.gif",
			MediaType: "gif",
		})
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, "Geçersiz medya türü.", actErr.Message)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		_, _, err := svc.CreateItem(context.Background(), CreateItemInput{
			MediaURL:  "https://example.com/a.jpg",
			MediaType: MediaImage,
		})
		var actErr *action.Error
		require.ErrorAs(t, err, &actErr)
		assert.Equal(t, action.CodeUnauthorized, actErr.Code)
	})
}

func TestDeleteItemRequiresAdmin(t *testing.T) {
	svc, repo, _ := newFixture(t)

	item, _, err := svc.CreateItem(authedContext(t, "member-1"), CreateItemInput{
		MediaURL:  "https://example.com/a.jpg",
		MediaType: MediaImage,
	})
	require.NoError(t, err)

	_, _, err = svc.DeleteItem(authedContext(t, "member-1"), item.ID)
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, action.CodeForbidden, actErr.Code)

	_, _, err = svc.DeleteItem(authedContext(t, "admin-1"), item.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpload(t *testing.T) {
	svc, _, store := newFixture(t)

	res, meta, err := svc.Upload(authedContext(t, "member-1"), "kapak.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "http://localhost:8080/uploads/gallery/"))
	assert.True(t, strings.HasSuffix(res.URL, ".jpg"))

	key, ok := meta["key"].(string)
	require.True(t, ok)
	contentType, data, ok := store.Object(key)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestUploadRejectsUnsupportedContent(t *testing.T) {
	svc, _, store := newFixture(t)

	_, _, err := svc.Upload(authedContext(t, "member-1"), "rapor.pdf", "application/pdf", strings.NewReader("%PDF"))
	var actErr *action.Error
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, "Sadece görsel ve video dosyaları yüklenebilir.", actErr.Message)
	assert.Equal(t, action.CodeUnsupportedMedia, actErr.Code)
	assert.Equal(t, 0, store.Len())
}

func TestListByEvent(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := authedContext(t, "member-1")
	eventID := "4f3f1f09-4c5f-4f92-8a68-2f3f7ae1c222"

	_, _, err := svc.CreateItem(ctx, CreateItemInput{
		EventID:   &eventID,
		MediaURL:  "https://example.com/1.jpg",
		MediaType: MediaImage,
	})
	require.NoError(t, err)
	_, _, err = svc.CreateItem(ctx, CreateItemInput{
		MediaURL:  "https://example.com/2.jpg",
		MediaType: MediaImage,
	})
	require.NoError(t, err)

	items, err := svc.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/1.jpg", items[0].MediaURL)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
