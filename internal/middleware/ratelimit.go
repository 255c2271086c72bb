package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/dailycheck/internal/logging"
)

// Counter increments a fixed-window counter. ttl is the time left in the
// window the increment landed in.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RedisCounter shares counts across instances. The window starts with the
// first hit on a key and is never extended by later hits.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left <= 0 || left > window {
		left = window
	}
	return incr.Val(), left, nil
}

// MemoryCounter is used when Redis is disabled. Counts are per process.
type MemoryCounter struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryWindow
}

type memoryWindow struct {
	count   int64
	expires time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{now: time.Now, entries: make(map[string]memoryWindow)}
}

func (c *MemoryCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}

	e := c.entries[key]
	if e.count == 0 {
		e.expires = now.Add(window)
	}
	e.count++
	c.entries[key] = e
	return e.count, e.expires.Sub(now), nil
}

type RateLimiter struct {
	counter    Counter
	limit      int
	window     time.Duration
	prefix     string
	trustProxy bool
	now        func() time.Time
	log        *logging.Logger
}

func NewRateLimiter(counter Counter, limit int, window time.Duration, prefix string) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		now:     time.Now,
		log:     logging.Default.Component("ratelimit"),
	}
}

// NewLoginRateLimiter limits login attempts per client IP per minute.
// Forwarding headers only pick the client IP when trustProxy is set.
func NewLoginRateLimiter(counter Counter, perMinute int, trustProxy bool) *RateLimiter {
	return NewRateLimiter(counter, perMinute, time.Minute, "ratelimit:login").TrustProxy(trustProxy)
}

// TrustProxy makes the limiter key on X-Forwarded-For / X-Real-IP. Only
// enable it behind a proxy that overwrites those headers.
func (rl *RateLimiter) TrustProxy(trust bool) *RateLimiter {
	rl.trustProxy = trust
	return rl
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.counter == nil || rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("%s:%s", rl.prefix, getClientIP(r, rl.trustProxy))
		allowed, remaining, retryAfter, err := rl.isAllowed(r.Context(), key)
		if err != nil {
			// Fail open: a broken counter must not lock everyone out.
			rl.log.Warn("rate limit check failed", logging.Fields{"error": err, "key": key})
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", rl.now().Unix()+retryAfter))

		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Rate limit exceeded. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isAllowed counts the request. retryAfter is the whole seconds until the
// window resets, at least 1.
func (rl *RateLimiter) isAllowed(ctx context.Context, key string) (allowed bool, remaining int, retryAfter int64, err error) {
	count, ttl, err := rl.counter.Incr(ctx, key, rl.window)
	if err != nil {
		return true, rl.limit, 0, err
	}

	retryAfter = max(int64(math.Ceil(ttl.Seconds())), 1)
	remaining = max(rl.limit-int(count), 0)
	return int(count) <= rl.limit, remaining, retryAfter, nil
}

// getClientIP returns the peer address, or the forwarded client address when
// the immediate peer is a trusted proxy.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if ip, _, err := net.SplitHostPort(first); err == nil {
				return ip
			}
			return first
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
