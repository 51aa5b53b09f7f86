package wire

import (
	"context"
	"log/slog"
	"time"
)

// sweepLockKey is the advisory lock key that elects one instance to run a sweep.
const sweepLockKey int64 = 0x7461696c6f72 // "tailor"

type tryLocker interface {
	TryWithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) (bool, error)
}

type pruner interface {
	Prune(ctx context.Context) ([]string, error)
}

type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// sweeper marks silent workers offline and drops expired idempotency keys.
// When several instances share a database only the lock holder sweeps a tick.
// A process-local key store is purged on every instance regardless of the lock.
type sweeper struct {
	locker    tryLocker
	presence  pruner
	keys      purger
	keysLocal bool
	every     time.Duration
}

// run ticks until ctx is done.
func (s *sweeper) run(ctx context.Context) {
	t := time.NewTicker(s.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *sweeper) sweep(ctx context.Context) {
	ran, err := s.locker.TryWithLock(ctx, sweepLockKey, func(ctx context.Context) error {
		names, err := s.presence.Prune(ctx)
		if err != nil {
			return err
		}
		if len(names) > 0 {
			slog.InfoContext(ctx, "sweeper: workers went offline", "workers", names)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "sweeper: prune presence failed", "error", err)
	}
	if s.keys == nil || (!ran && !s.keysLocal) {
		return
	}
	n, err := s.keys.Purge(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "sweeper: purge idempotency keys failed", "error", err)
		return
	}
	if n > 0 {
		slog.DebugContext(ctx, "sweeper: purged idempotency keys", "count", n)
	}
}
