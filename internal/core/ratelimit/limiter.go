package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"repair-tracker/internal/core/cache"

	"golang.org/x/time/rate"
)

// Limiter decides whether another request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// idleAfter is how long a key must go unseen before its bucket is dropped.
// A bucket refills completely within a minute, so dropping it then loses no state.
const idleAfter = time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is an in-process token bucket per key. Buckets idle for
// longer than idleAfter are evicted.
type LocalLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewLocalLimiter allows perMinute requests per key per minute, with bursts of
// the same size.
func NewLocalLimiter(perMinute int) *LocalLimiter {
	return &LocalLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		now:      time.Now,
	}
}

// Allow implements Limiter. It never fails.
func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= idleAfter {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1), nil
}

func (l *LocalLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= idleAfter {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// RedisLimiter is a fixed-window limiter shared by every instance using the
// same Redis.
type RedisLimiter struct {
	counter cache.Counter
	limit   int64
	window  time.Duration
	prefix  string
}

// NewRedisLimiter allows limit requests per key per window.
func NewRedisLimiter(counter cache.Counter, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		prefix:  "ratelimit:",
	}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.counter.Incr(ctx, l.prefix+key, l.window)
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return n <= l.limit, nil
}
