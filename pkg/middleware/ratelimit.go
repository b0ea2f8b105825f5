package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = time.Minute

// RateLimiter keeps one token bucket per project. Requests that carry no
// claims (public routes) are keyed by client address instead.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	enabled  bool
	mu       sync.RWMutex
}

func NewRateLimiter(enabled bool, rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		enabled:  enabled,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists = rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[key] = limiter

		time.AfterFunc(limiterIdleTTL, func() {
			rl.mu.Lock()
			delete(rl.limiters, key)
			rl.mu.Unlock()
		})
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	if !rl.enabled {
		return true
	}
	return rl.getLimiter(key).Allow()
}

// RateLimit rejects requests over the caller's budget with 429.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			if !limiter.Allow(key) {
				log.ForContext(r.Context()).WithField("path", r.URL.Path).Warn("rate limit exceeded for " + key)
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "too many requests", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return "project:" + strconv.FormatInt(claims.ProjectID, 10)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "addr:" + r.RemoteAddr
	}
	return "addr:" + host
}
