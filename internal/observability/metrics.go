package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus metrics.
type Metrics struct {
	BidsAccepted prometheus.Counter
	BidsRejected *prometheus.CounterVec

	AuctionsCreated    prometheus.Counter
	AuctionsStarted    prometheus.Counter
	AuctionsFinalized  prometheus.Counter
	SettlementFailures prometheus.Counter

	SweepDuration prometheus.Histogram
}

// NewMetrics registers the engine metrics against the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BidsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Bids admitted and recorded.",
		}),
		BidsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Bids rejected, by reason.",
		}, []string{"reason"}),
		AuctionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_created_total",
			Help: "Auctions created.",
		}),
		AuctionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_started_total",
			Help: "Auctions moved to ACTIVE.",
		}),
		AuctionsFinalized: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_finalized_total",
			Help: "Auctions moved to FINISHED.",
		}),
		SettlementFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "auction_settlement_failures_total",
			Help: "Finalize attempts that failed settling the winning bid.",
		}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "auction_sweep_duration_seconds",
			Help:    "Duration of one lifecycle sweep iteration.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
