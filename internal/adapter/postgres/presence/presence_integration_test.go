//go:build integration

package presence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgpresence "github.com/alanyang/tailor-flow/internal/adapter/postgres/presence"
	"github.com/alanyang/tailor-flow/internal/testutil"
)

func TestTouchListPrune(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgpresence.New(pool)
	ctx := context.Background()

	// Far-past timestamps keep this test clear of rows written by other runs.
	base := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := "fresh-" + uuid.New().String()[:6]
	stale := "stale-" + uuid.New().String()[:6]

	require.NoError(t, repo.Touch(ctx, stale, base))
	require.NoError(t, repo.Touch(ctx, fresh, base.Add(time.Minute)))
	// An older heartbeat never moves last_seen backwards.
	require.NoError(t, repo.Touch(ctx, fresh, base))

	online, err := repo.ListSince(ctx, base.Add(30*time.Second))
	require.NoError(t, err)
	var names []string
	for _, p := range online {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, fresh)
	assert.NotContains(t, names, stale)

	pruned, err := repo.DeleteBefore(ctx, base.Add(30*time.Second))
	require.NoError(t, err)
	assert.Contains(t, pruned, stale)
	assert.NotContains(t, pruned, fresh)

	require.NoError(t, repo.Remove(ctx, fresh))
	online, err = repo.ListSince(ctx, base)
	require.NoError(t, err)
	for _, p := range online {
		assert.NotEqual(t, fresh, p.Name)
	}
}
