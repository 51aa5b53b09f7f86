package idempotency

import (
	"context"
	"time"
)

// Store remembers the response of a write keyed by the client's Idempotency-Key,
// so a retried POST replays the first answer instead of running twice.
type Store interface {
	// Check returns the stored response and whether the key is known and unexpired.
	Check(ctx context.Context, key string) ([]byte, bool, error)
	// Store records a response. An existing key is left untouched.
	Store(ctx context.Context, key, route string, response []byte, ttl time.Duration) error
}
