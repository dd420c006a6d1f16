package bench

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

// Stats summarizes the per-round mean latencies of one operation
type Stats struct {
	Rounds int           `json:"rounds" yaml:"rounds"`
	Mean   time.Duration `json:"mean" yaml:"mean"`
	StdDev time.Duration `json:"std_deviation" yaml:"std_deviation"`
	Min    time.Duration `json:"min" yaml:"min"`
	Max    time.Duration `json:"max" yaml:"max"`
	Median time.Duration `json:"median" yaml:"median"`
}

// NewStats computes the statistics of the given samples
func NewStats(samples []time.Duration) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	// the reservoir holds every sample, so the snapshot is exact
	h := metrics.NewHistogram(metrics.NewUniformSample(len(samples)))
	for _, s := range samples {
		h.Update(int64(s))
	}
	snap := h.Snapshot()

	return Stats{
		Rounds: len(samples),
		Mean:   time.Duration(snap.Mean()),
		StdDev: time.Duration(snap.StdDev()),
		Min:    time.Duration(snap.Min()),
		Max:    time.Duration(snap.Max()),
		Median: time.Duration(snap.Percentile(0.5)),
	}
}
