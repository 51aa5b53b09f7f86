package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DistributionRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tailor_distribution_runs_total", Help: "Distribution runs by result"},
		[]string{"result"},
	)
	SplitPiles = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tailor_distribution_split_piles_total", Help: "Piles split across workers"},
	)
	ShortfallWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tailor_distribution_shortfalls_total", Help: "Workers assigned less than their quota"},
	)
	DistributedUnits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tailor_distribution_units",
			Help:    "Units per distribution run",
			Buckets: prometheus.ExponentialBuckets(10, 2, 8),
		},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "tailor_http_request_seconds", Help: "HTTP request latency"},
		[]string{"method", "status"},
	)
)

// Result labels for DistributionRuns.
const (
	ResultOK             = "ok"
	ResultInvalidRoster  = "invalid_roster"
	ResultMalformedOrder = "malformed_order"
	ResultError          = "error"
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{DistributionRuns, SplitPiles, ShortfallWarnings, DistributedUnits, RequestLatency}
}

// NewRegistry returns a registry with every collector registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	for _, c := range Collectors() {
		reg.MustRegister(c)
	}
	return reg
}
