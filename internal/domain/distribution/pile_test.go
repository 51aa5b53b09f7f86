package distribution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/alanyang/tailor-flow/internal/domain/distribution"
)

func TestBuildPool(t *testing.T) {
	orders := []Order{
		{Code: "P1", Model: "PDH", Sizes: sizes("S", 2, "M", 0, "L", 5)},
		{Code: "P2", Model: "Rompi", Sizes: sizes("XL", 1)},
	}

	pool, total, err := BuildPool(orders)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Equal(t, []Pile{
		{OrderCode: "P1", Model: "PDH", Size: "S", Count: 2},
		{OrderCode: "P1", Model: "PDH", Size: "L", Count: 5},
		{OrderCode: "P2", Model: "Rompi", Size: "XL", Count: 1},
	}, pool)
}

func TestBuildPool_Empty(t *testing.T) {
	pool, total, err := BuildPool(nil)
	require.NoError(t, err)
	assert.Empty(t, pool)
	assert.Zero(t, total)
}
