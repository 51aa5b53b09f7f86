//go:build integration

package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgchat "github.com/alanyang/tailor-flow/internal/adapter/postgres/chat"
	domainchat "github.com/alanyang/tailor-flow/internal/domain/chat"
	"github.com/alanyang/tailor-flow/internal/testutil"
)

func TestCreateAndRecent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgchat.New(pool)
	ctx := context.Background()

	base := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)
	for i, text := range []string{"satu", "dua", "tiga"} {
		m := domainchat.NewMessage("Maris", text, "")
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		_, err := repo.Create(ctx, m)
		require.NoError(t, err)
	}

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dua", got[0].Text)
	assert.Equal(t, "tiga", got[1].Text)
}
