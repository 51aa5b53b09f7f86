package presence

import (
	"context"
	"time"

	domainworker "github.com/alanyang/tailor-flow/internal/domain/worker"
)

// Repository stores worker heartbeats, one row per name.
type Repository interface {
	Touch(ctx context.Context, name string, seenAt time.Time) error
	Remove(ctx context.Context, name string) error
	ListSince(ctx context.Context, since time.Time) ([]domainworker.Presence, error)
	// DeleteBefore removes rows last seen before cutoff and returns their names.
	DeleteBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}
