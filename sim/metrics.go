package sim

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
)

// Structs

// Metrics carries the operational counters the cluster feeds while a
// scenario runs.
type Metrics struct {
	OpsApplied    metrics.Counter
	DeltasShipped metrics.Counter
	MergesApplied metrics.Counter
}

// Functions

// NopMetrics returns counters that discard every count, for callers
// that run scenarios without metrics exposure.
func NopMetrics() *Metrics {

	return &Metrics{
		OpsApplied:    discard.NewCounter(),
		DeltasShipped: discard.NewCounter(),
		MergesApplied: discard.NewCounter(),
	}
}
