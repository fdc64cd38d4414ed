// internal/ratelimit/limiter.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter defines the interface for rate limiting implementations.
//
// Keys are opaque; the admin API uses the client address.
type RateLimiter interface {
	// Allow checks if a request for the given key can proceed immediately
	// without blocking. Returns true if allowed, false otherwise.
	Allow(key string) bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key
type KeyedLimiter struct {
	limiters map[string]*entry
	mu       sync.Mutex
	perKey   rate.Limit // Requests per second per key
	burst    int        // Burst capacity
	now      func() time.Time
}

// NewKeyedLimiter creates a new rate limiter with the specified per-key rate.
// A rate <= 0 disables limiting.
func NewKeyedLimiter(requestsPerSecond float64, burst int) *KeyedLimiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		perKey:   limit,
		burst:    burst,
		now:      time.Now,
	}
}

// Allow checks if a request can proceed immediately without blocking
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.getLimiter(key).Allow()
}

// getLimiter returns or creates a rate limiter for the given key
func (kl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, exists := kl.limiters[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(kl.perKey, kl.burst)}
		kl.limiters[key] = e
	}
	e.lastSeen = kl.now()
	return e.limiter
}

// Sweep forgets keys not seen for longer than idle and returns how many were
// removed.
func (kl *KeyedLimiter) Sweep(idle time.Duration) int {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	cutoff := kl.now().Add(-idle)
	removed := 0
	for key, e := range kl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(kl.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.limiters)
}

// ClientKey extracts the rate limit key of a request: the remote host, or the
// first X-Forwarded-For hop when trustProxy is set and the header is present.
// Clients reaching the server directly can forge the header, so trustProxy
// belongs only behind a reverse proxy that overwrites it.
func ClientKey(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
