//go:build integration

package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgorder "github.com/alanyang/tailor-flow/internal/adapter/postgres/order"
	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	"github.com/alanyang/tailor-flow/internal/testutil"
)

func uniqueCode() string { return "IT-" + uuid.New().String()[:8] }

func newOrder(code, tailor string) domainorder.Order {
	o := domainorder.New(code, tailor, "PDH", []domainorder.SizeDetail{
		{Size: "M", Count: 3, Sleeve: domainorder.SleeveLong},
		{Size: "L", Count: 2},
	})
	o.CreatedAt = o.CreatedAt.Truncate(time.Microsecond)
	o.UpdatedAt = o.UpdatedAt.Truncate(time.Microsecond)
	return o
}

func TestUpsertAndGet(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgorder.New(pool)
	ctx := context.Background()

	o := newOrder(uniqueCode(), "Maris")
	saved, err := repo.Upsert(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, o.ID, saved.ID)
	assert.Equal(t, 5, saved.Quantity)

	got, err := repo.GetByCode(ctx, o.Code)
	require.NoError(t, err)
	assert.Equal(t, o.Sizes, got.Sizes)
	assert.Equal(t, domainorder.StatusInProgress, got.Status)
}

func TestUpsert_ReplacesByCodeAndKeepsID(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgorder.New(pool)
	ctx := context.Background()

	first := newOrder(uniqueCode(), "Maris")
	_, err := repo.Upsert(ctx, first)
	require.NoError(t, err)

	second := newOrder(first.Code, "Ferry")
	second.Status = domainorder.StatusDone
	saved, err := repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved.ID)
	assert.Equal(t, "Ferry", saved.Tailor)
	assert.Equal(t, domainorder.StatusDone, saved.Status)
}

func TestSoftDelete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgorder.New(pool)
	ctx := context.Background()

	o := newOrder(uniqueCode(), "Maris")
	_, err := repo.Upsert(ctx, o)
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, o.Code))
	_, err = repo.GetByCode(ctx, o.Code)
	assert.ErrorIs(t, err, domainorder.ErrNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, o.Code), domainorder.ErrNotFound)

	_, found, err := repo.FindOwner(ctx, o.Code)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindOwner(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgorder.New(pool)
	ctx := context.Background()

	o := newOrder(uniqueCode(), "Abdul")
	_, err := repo.Upsert(ctx, o)
	require.NoError(t, err)

	owner, found, err := repo.FindOwner(ctx, o.Code)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Abdul", owner)
}

func TestList_Filters(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgorder.New(pool)
	ctx := context.Background()

	tailor := "Tailor-" + uuid.New().String()[:6]
	a := newOrder(uniqueCode(), tailor)
	b := newOrder(uniqueCode(), tailor)
	b.Status = domainorder.StatusDone
	for _, o := range []domainorder.Order{a, b} {
		_, err := repo.Upsert(ctx, o)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domainorder.ListFilters{Tailor: tailor})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	done := domainorder.StatusDone
	finished, err := repo.List(ctx, domainorder.ListFilters{Tailor: tailor, Status: &done})
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, b.Code, finished[0].Code)
}
