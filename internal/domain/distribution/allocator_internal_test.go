package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFill_PoolExhaustedFlagsShortfall(t *testing.T) {
	r := &run{pool: []Pile{{OrderCode: "S1", Size: "M", Count: 3}}}

	first := r.fill("Alice", 2)
	assert.Nil(t, first.Shortfall)
	assert.Equal(t, 1, r.splits)

	second := r.fill("Bob", 4)
	assert.Equal(t, 1, second.TotalAssigned)
	require.NotNil(t, second.Shortfall)
	assert.Equal(t, ShortfallWarning{Worker: "Bob", Target: 4, Assigned: 1}, *second.Shortfall)
	assert.Equal(t, 3, second.Shortfall.Missing())

	third := r.fill("Carl", 1)
	assert.Empty(t, third.Items)
	require.NotNil(t, third.Shortfall)

	rep := newReport(3, r.splits, []Allocation{first, second, third})
	assert.Len(t, rep.Shortfalls(), 2)
	assert.Len(t, rep.WithItems(), 2)
}
