package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_FixedWindow(t *testing.T) {
	t.Parallel()

	t.Run("request over the ceiling is rejected with retry-after", func(t *testing.T) {
		mw := NewRateLimitMiddleware(time.Minute, 3, 0)

		for i := 0; i < 3; i++ {
			decision := mw.Admit("10.0.0.1", RouteClassGeneral)
			require.True(t, decision.Allowed, "request %d should be admitted", i+1)
		}

		decision := mw.Admit("10.0.0.1", RouteClassGeneral)
		require.False(t, decision.Allowed)
		require.Greater(t, decision.RetryAfter, time.Duration(0))
		require.LessOrEqual(t, decision.RetryAfter, time.Minute)
	})

	t.Run("count resets once the window elapses", func(t *testing.T) {
		mw := NewRateLimitMiddleware(time.Minute, 2, 0)

		current := time.Unix(1_700_000_000, 0)
		mw.now = func() time.Time { return current }

		require.True(t, mw.Admit("10.0.0.2", RouteClassGeneral).Allowed)
		require.True(t, mw.Admit("10.0.0.2", RouteClassGeneral).Allowed)
		require.False(t, mw.Admit("10.0.0.2", RouteClassGeneral).Allowed)

		current = current.Add(61 * time.Second)
		require.True(t, mw.Admit("10.0.0.2", RouteClassGeneral).Allowed)
	})

	t.Run("distinct clients have independent budgets", func(t *testing.T) {
		mw := NewRateLimitMiddleware(time.Minute, 1, 0)

		require.True(t, mw.Admit("10.0.0.3", RouteClassGeneral).Allowed)
		require.False(t, mw.Admit("10.0.0.3", RouteClassGeneral).Allowed)
		require.True(t, mw.Admit("10.0.0.4", RouteClassGeneral).Allowed)
	})

	t.Run("auth routes use the stricter limit", func(t *testing.T) {
		mw := NewRateLimitMiddleware(time.Minute, 100, 1)

		require.True(t, mw.Admit("10.0.0.5", RouteClassAuth).Allowed)
		require.False(t, mw.Admit("10.0.0.5", RouteClassAuth).Allowed)
		require.True(t, mw.Admit("10.0.0.5", RouteClassGeneral).Allowed)
	})

	t.Run("zero limit means unlimited", func(t *testing.T) {
		mw := NewRateLimitMiddleware(time.Minute, 0, 1)

		for i := 0; i < 50; i++ {
			require.True(t, mw.Admit("10.0.0.6", RouteClassGeneral).Allowed)
		}
	})
}

// Concurrent admits from one client must never jointly exceed the ceiling:
// increment-and-check holds the bucket lock for the full decision.
func TestRateLimit_ConcurrentAdmits(t *testing.T) {
	t.Parallel()

	const limit = 50
	const attempts = 200

	mw := NewRateLimitMiddleware(time.Minute, limit, 0)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if mw.Admit("10.0.0.7", RouteClassGeneral).Allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(limit), admitted.Load())
}

func TestRateLimit_Handler(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(time.Minute, 100, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Handler(next)

	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.NotEmpty(t, rec2.Header().Get("Retry-After"))

	// General routes are unaffected by the exhausted auth budget.
	req3 := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	assert.Equal(t, http.StatusOK, rec3.Code)
}

// The bucket cap must hold even when every tracked client is still inside
// the eviction horizon, so distinct-address floods cannot grow the map.
func TestRateLimit_BucketCapIsHard(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(time.Minute, 1, 0)

	current := time.Unix(1_700_000_000, 0)
	mw.now = func() time.Time { return current }

	for i := 0; i < maxBuckets+100; i++ {
		// Keep every bucket active: no window ever goes stale.
		current = current.Add(time.Millisecond)
		mw.Admit("flood-"+strconv.Itoa(i), RouteClassGeneral)
	}

	mw.mu.Lock()
	defer mw.mu.Unlock()
	assert.LessOrEqual(t, len(mw.buckets), maxBuckets)
}

func TestRateLimit_EvictsStaleBuckets(t *testing.T) {
	t.Parallel()

	mw := NewRateLimitMiddleware(time.Minute, 1, 0)

	current := time.Unix(1_700_000_000, 0)
	mw.now = func() time.Time { return current }

	for i := 0; i < maxBuckets; i++ {
		mw.Admit("client-"+strconv.Itoa(i), RouteClassGeneral)
	}

	current = current.Add(10 * time.Minute)
	mw.Admit("fresh-client", RouteClassGeneral)

	mw.mu.Lock()
	defer mw.mu.Unlock()
	assert.Less(t, len(mw.buckets), maxBuckets)
}
