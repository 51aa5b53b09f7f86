package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/tailor-flow/internal/metrics"
)

func TestNewRegistry_RegistersEveryCollector(t *testing.T) {
	reg := metrics.NewRegistry()

	metrics.DistributionRuns.WithLabelValues(metrics.ResultOK).Inc()
	metrics.RequestLatency.WithLabelValues("GET", "200").Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["tailor_distribution_runs_total"])
	assert.True(t, names["tailor_http_request_seconds"])
}
