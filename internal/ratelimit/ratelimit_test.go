package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeyclub/platform/internal/ratelimit"
)

func TestMemoryStoreWindow(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	base := time.Now()
	const max = 3
	window := time.Minute

	for i := 0; i < max; i++ {
		res, err := store.Take("login:1.2.3.4", base.Add(time.Duration(i)*time.Second), max, window)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, max-i-1, res.Remaining)
	}

	// (N+1)-th call inside the window is rejected; reset points at the
	// oldest retained stamp plus the window.
	res, err := store.Take("login:1.2.3.4", base.Add(10*time.Second), max, window)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, base.UnixMilli()+window.Milliseconds(), res.Reset.UnixMilli())

	// One window after the first accepted call the budget frees up.
	res, err = store.Take("login:1.2.3.4", base.Add(window).Add(time.Millisecond), max, window)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryStoreIdentifiersIndependent(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	now := time.Now()

	res, err := store.Take("contact:a", now, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Take("contact:a", now, 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = store.Take("contact:b", now, 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryStoreCleanupEvictsStaleIdentifiers(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	base := time.Now()

	_, err := store.Take("stale:1", base, 5, time.Minute)
	require.NoError(t, err)
	_, err = store.Take("fresh:1", base.Add(3*time.Hour), 5, time.Minute)
	require.NoError(t, err)

	// The cleanup runs during the second Take (over a minute after the
	// first) and drops the identifier idle beyond the retention ceiling.
	assert.Equal(t, 1, store.Len())
}

func TestLimiterFailsOpen(t *testing.T) {
	limiter := ratelimit.NewLimiter(failingStore{}, nil)
	res := limiter.Check("login:x", 5, time.Minute)
	assert.True(t, res.Allowed)
}

type failingStore struct{}

func (failingStore) Take(string, time.Time, int, time.Duration) (ratelimit.Result, error) {
	return ratelimit.Result{}, assert.AnError
}

type recordingHits struct {
	prefixes []string
}

func (r *recordingHits) ObserveRateLimitHit(prefix string) {
	r.prefixes = append(r.prefixes, prefix)
}

func TestLimiterNotifiesHitObserverOnRejection(t *testing.T) {
	hits := &recordingHits{}
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), nil).WithHitObserver(hits)

	const max = 2
	for i := 0; i < max; i++ {
		res := limiter.Check("login:1.2.3.4", max, time.Minute)
		require.True(t, res.Allowed)
	}
	assert.Empty(t, hits.prefixes)

	res := limiter.Check("login:1.2.3.4", max, time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, []string{"login"}, hits.prefixes)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ratelimit.ClientIP(r))

	r = httptest.NewRequest("POST", "/", nil)
	r.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", ratelimit.ClientIP(r))

	r = httptest.NewRequest("POST", "/", nil)
	assert.Equal(t, "unknown", ratelimit.ClientIP(r))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "login:1.2.3.4", ratelimit.Key("login", "1.2.3.4"))
}
