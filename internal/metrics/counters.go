// Package metrics implements the atomic operation counters reported by the
// driver in non-speed-test mode.
package metrics

import "sync/atomic"

// Counters accumulates the run-wide totals. All fields are folded in via
// [Counters.Add] from a goroutine-local [Local] at task end, matching the
// driver's "accumulate thread-locally, then atomically fold into global
// counters" discipline.
type Counters struct {
	totalOps        atomic.Int64
	totalLookups    atomic.Int64
	lookupHits      atomic.Int64
	lookupMisses    atomic.Int64
	totalInserts    atomic.Int64
	valueMismatches atomic.Int64
}

// Local is a goroutine-local, non-atomic accumulator for one task's worth of
// operations. Folded into a shared [Counters] with [Counters.Add] once the
// task finishes, so the hot path never touches an atomic per operation.
type Local struct {
	TotalOps        int64
	TotalLookups    int64
	LookupHits      int64
	LookupMisses    int64
	TotalInserts    int64
	ValueMismatches int64
}

// Add folds a task-local accumulator into the shared counters.
func (c *Counters) Add(l Local) {
	if l.TotalOps != 0 {
		c.totalOps.Add(l.TotalOps)
	}

	if l.TotalLookups != 0 {
		c.totalLookups.Add(l.TotalLookups)
	}

	if l.LookupHits != 0 {
		c.lookupHits.Add(l.LookupHits)
	}

	if l.LookupMisses != 0 {
		c.lookupMisses.Add(l.LookupMisses)
	}

	if l.TotalInserts != 0 {
		c.totalInserts.Add(l.TotalInserts)
	}

	if l.ValueMismatches != 0 {
		c.valueMismatches.Add(l.ValueMismatches)
	}
}

// Snapshot is a point-in-time, non-atomic read of all counters, suitable for
// reporting (internal/report) once the driver has quiesced.
type Snapshot struct {
	TotalOps        int64
	TotalLookups    int64
	LookupHits      int64
	LookupMisses    int64
	TotalInserts    int64
	ValueMismatches int64
}

// Snapshot reads the current values of all counters.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		TotalOps:        c.totalOps.Load(),
		TotalLookups:    c.totalLookups.Load(),
		LookupHits:      c.lookupHits.Load(),
		LookupMisses:    c.lookupMisses.Load(),
		TotalInserts:    c.totalInserts.Load(),
		ValueMismatches: c.valueMismatches.Load(),
	}
}
