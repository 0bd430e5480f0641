package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"newsact/internal/model"
)

const (
	RouteClassGeneral = "general"
	RouteClassAuth    = "auth"

	// maxBuckets is a hard cap on tracked (client, route class) pairs.
	// Inserting past it evicts stale windows first, then the oldest
	// bucket outright.
	maxBuckets = 4096
)

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type bucket struct {
	count       int
	windowStart time.Time
}

// RateLimitMiddleware counts requests per (client address, route class) in
// fixed windows. Counts reset at each window boundary, which lets up to 2x
// the ceiling through across a boundary; that is an accepted property of
// fixed windows here, not something to compensate for.
type RateLimitMiddleware struct {
	window       time.Duration
	generalLimit int
	authLimit    int

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewRateLimitMiddleware(window time.Duration, generalLimit int, authLimit int) *RateLimitMiddleware {
	if window <= 0 {
		window = time.Minute
	}

	return &RateLimitMiddleware{
		window:       window,
		generalLimit: generalLimit,
		authLimit:    authLimit,
		buckets:      map[string]*bucket{},
		now:          time.Now,
	}
}

// Admit performs an atomic increment-and-check for one bucket. A limit of
// zero or less means the route class is unlimited.
func (m *RateLimitMiddleware) Admit(clientKey string, routeClass string) Decision {
	limit := m.generalLimit
	if routeClass == RouteClassAuth {
		limit = m.authLimit
	}
	if limit <= 0 {
		return Decision{Allowed: true}
	}

	key := clientKey + "|" + routeClass

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, exists := m.buckets[key]
	if !exists {
		m.evictStaleLocked(now)
		b = &bucket{windowStart: now}
		m.buckets[key] = b
	}

	if now.Sub(b.windowStart) >= m.window {
		b.count = 0
		b.windowStart = now
	}

	b.count++
	if b.count > limit {
		return Decision{RetryAfter: m.window - now.Sub(b.windowStart)}
	}

	return Decision{Allowed: true}
}

func (m *RateLimitMiddleware) evictStaleLocked(now time.Time) {
	if len(m.buckets) < maxBuckets {
		return
	}

	cutoff := now.Add(-2 * m.window)
	for key, b := range m.buckets {
		if b.windowStart.Before(cutoff) {
			delete(m.buckets, key)
		}
	}

	// All buckets still active: drop the oldest so the cap holds even when
	// more than maxBuckets distinct clients hit inside one horizon. An
	// evicted client merely starts a fresh window on its next request.
	for len(m.buckets) >= maxBuckets {
		var oldestKey string
		var oldestStart time.Time
		for key, b := range m.buckets {
			if oldestKey == "" || b.windowStart.Before(oldestStart) {
				oldestKey = key
				oldestStart = b.windowStart
			}
		}
		delete(m.buckets, oldestKey)
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := m.Admit(extractClientIP(r), classifyRoute(r.URL.Path))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(model.APIResponse{
				Success: false,
				Error: &model.APIError{
					Code:    "RATE_LIMITED",
					Message: "Too many requests",
					Details: fmt.Sprintf("retry after %d seconds", retryAfter),
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func classifyRoute(path string) string {
	if strings.HasPrefix(strings.ToLower(path), "/api/v1/auth") {
		return RouteClassAuth
	}
	return RouteClassGeneral
}

func extractClientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	realIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
