package cache

import (
	"context"
	"time"
)

// Counter is a shared fixed-window counter store.
// It is implemented by RedisAdapter; tests use miniredis.
type Counter interface {
	// Incr increments key and returns the new value. The key expires
	// window after it was first created.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the connection.
	Close() error
}
