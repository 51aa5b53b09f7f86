package locker

import "context"

// AdvisoryLocker serialises critical sections that share an int64 key, such as every
// write to one order code. Lock and unlock happen on the same DB connection because
// pg_advisory_lock is session scoped.
type AdvisoryLocker interface {
	WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error
}
