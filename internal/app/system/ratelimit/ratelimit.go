// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
)

// Counter is the cache-store operation the limiter needs: a fixed-window
// counter keyed per client.
type Counter interface {
	CountWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter enforces a fixed-window request limit per client, with the
// window counter held in the cache store so all instances share it.
// If the cache store is unavailable the limiter fails open: rate
// limiting is advisory and must never take the API down with it.
type Limiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	log     *zap.Logger
}

// New creates a limiter allowing limit requests per window per client.
func New(counter Counter, limit int, window time.Duration, log *zap.Logger) *Limiter {
	return &Limiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		log:     log,
	}
}

// Allow reports whether a request from the given client key is within the
// current window's limit.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	count, err := l.counter.CountWindow(ctx, cachestore.RateLimitKey(key), l.window)
	if err != nil {
		l.log.Warn("rate limiter unavailable, failing open", zap.Error(err))
		return true
	}
	return count <= l.limit
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.Context(), ClientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the client IP from an HTTP request. It checks
// X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr might not have a port
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
