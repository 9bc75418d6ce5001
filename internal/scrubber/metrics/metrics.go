package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmitsTotal counts upload submissions by outcome.
	SubmitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrubber_submits_total",
		Help: "Upload submissions by outcome.",
	}, []string{"status"})

	// RetrievalsTotal counts download attempts by outcome.
	RetrievalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrubber_retrievals_total",
		Help: "Download attempts by outcome.",
	}, []string{"status"})

	// SweepDeletedTotal counts objects reclaimed by the background sweeper.
	SweepDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrubber_sweep_deleted_total",
		Help: "Objects reclaimed by the background sweeper.",
	})

	// SweepReclaimedBytes counts bytes reclaimed by the background sweeper.
	SweepReclaimedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrubber_sweep_reclaimed_bytes_total",
		Help: "Bytes reclaimed by the background sweeper.",
	})
)
