// Package engine runs the analysis loop: every resolved tool over every
// applicable file, sequentially, with threshold enforcement and a global
// early exit once a threshold trips.
package engine

import "github.com/lintgate/lintgate/internal/types"

// Counters tallies findings per threshold bucket. Failure is latched: once a
// bucket reaches its configured maximum the counters report not-ok forever,
// and the counts stop moving.
type Counters struct {
	limits types.Limits
	counts [3]int
	failed bool
}

// NewCounters creates counters for the given limits.
func NewCounters(limits types.Limits) *Counters {
	return &Counters{limits: limits}
}

// Add counts one finding and returns whether the run is still ok. Thresholds
// are evaluated one finding at a time, in production order, so the n-th
// finding of the breaching severity is exactly what trips the stop.
func (c *Counters) Add(sev types.Severity) bool {
	if c.failed {
		return false
	}
	b := sev.ThresholdBucket()
	c.counts[b]++
	if max := c.limits.Max(b); max != nil && c.counts[b] >= *max {
		c.failed = true
	}
	return !c.failed
}

// OK reports whether no threshold has been exceeded.
func (c *Counters) OK() bool { return !c.failed }

// Count returns the tally for one bucket.
func (c *Counters) Count(b types.Bucket) int { return c.counts[int(b)] }
