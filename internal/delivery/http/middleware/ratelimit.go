package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"minieventms/internal/delivery/http/helpers"
)

// RateLimiter caps requests per client identity (remote address) to a fixed
// per-minute quota using a token bucket. Requests over quota are rejected
// immediately with 429; nothing is queued. Construct one at startup and Stop
// it at shutdown.
type RateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	perMinute int
	stop      chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter with the given per-minute quota per client.
// A quota of zero or less disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	l := &RateLimiter{
		entries:   make(map[string]*limiterEntry),
		perMinute: perMinute,
		stop:      make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Limit wraps next with the per-client quota check.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.perMinute <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if !l.limiter(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeRateLimited, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.entries[key]; ok {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	interval := time.Minute / time.Duration(l.perMinute)
	limiter := rate.NewLimiter(rate.Every(interval), l.perMinute)
	l.entries[key] = &limiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}
	return limiter
}

// cleanupLoop removes entries not seen in 15 minutes so the map stays bounded.
func (l *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

func (l *RateLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	ttl := 15 * time.Minute
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > ttl {
			delete(l.entries, key)
		}
	}
}

// Stop shuts down the cleanup goroutine.
func (l *RateLimiter) Stop() {
	close(l.stop)
}

// clientKey derives the client identity from the remote network address.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
