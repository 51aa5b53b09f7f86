package wire

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLocker struct {
	free  bool
	calls int
}

func (l *fakeLocker) TryWithLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) (bool, error) {
	l.calls++
	if !l.free {
		return false, nil
	}
	return true, fn(ctx)
}

type fakePruner struct {
	names []string
	err   error
	calls int
}

func (p *fakePruner) Prune(context.Context) ([]string, error) {
	p.calls++
	return p.names, p.err
}

type fakePurger struct{ calls int }

func (p *fakePurger) Purge(context.Context) (int64, error) {
	p.calls++
	return 3, nil
}

func TestSweeper_LockHolderSweeps(t *testing.T) {
	lk, pr, pu := &fakeLocker{free: true}, &fakePruner{names: []string{"Maris"}}, &fakePurger{}
	s := &sweeper{locker: lk, presence: pr, keys: pu}

	s.sweep(context.Background())

	assert.Equal(t, 1, pr.calls)
	assert.Equal(t, 1, pu.calls)
}

func TestSweeper_SkipsWhenAnotherInstanceHoldsLock(t *testing.T) {
	lk, pr, pu := &fakeLocker{free: false}, &fakePruner{}, &fakePurger{}
	s := &sweeper{locker: lk, presence: pr, keys: pu}

	s.sweep(context.Background())

	assert.Equal(t, 1, lk.calls)
	assert.Zero(t, pr.calls)
	assert.Zero(t, pu.calls)
}

func TestSweeper_PruneErrorStillPurges(t *testing.T) {
	pr, pu := &fakePruner{err: errors.New("db down")}, &fakePurger{}
	s := &sweeper{locker: &fakeLocker{free: true}, presence: pr, keys: pu}

	s.sweep(context.Background())

	assert.Equal(t, 1, pu.calls)
}

func TestSweeper_NilPurger(t *testing.T) {
	pr := &fakePruner{}
	s := &sweeper{locker: &fakeLocker{free: true}, presence: pr}

	assert.NotPanics(t, func() { s.sweep(context.Background()) })
	assert.Equal(t, 1, pr.calls)
}

func TestSweeper_LocalKeyStorePurgedWithoutLock(t *testing.T) {
	lk, pr, pu := &fakeLocker{free: false}, &fakePruner{}, &fakePurger{}
	s := &sweeper{locker: lk, presence: pr, keys: pu, keysLocal: true}

	s.sweep(context.Background())

	assert.Zero(t, pr.calls, "presence belongs to the lock holder")
	assert.Equal(t, 1, pu.calls)
}
