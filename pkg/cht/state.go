package cht

import "sync/atomic"

// tableState is the data shared by both variants: the bucket array and the
// handful of atomics (item count, resize-needed flag) that must live on the
// table rather than as free variables, so that multiple tables in one
// process never interfere with each other's resize-needed flag.
type tableState struct {
	buckets []bucket

	numItems     atomic.Int64
	resizeNeeded atomic.Bool

	resizeEnabled bool
}

func newTableState(numBuckets uint64, resizeEnabled bool) *tableState {
	return &tableState{
		buckets:       make([]bucket, numBuckets),
		resizeEnabled: resizeEnabled,
	}
}

func (s *tableState) numBuckets() uint64 {
	return uint64(len(s.buckets))
}

func (s *tableState) bucketFor(key uint64) *bucket {
	return &s.buckets[bucketIndex(key, s.numBuckets())]
}

// maybeTriggerResize raises resizeNeeded once a successful new-node insert's
// scan depth reaches [MaxChainSize]. The read-before-write avoids redundant
// atomic stores once the flag is already set.
func (s *tableState) maybeTriggerResize(depth int) {
	if !s.resizeEnabled || depth < MaxChainSize {
		return
	}

	if !s.resizeNeeded.Load() {
		s.resizeNeeded.Store(true)
	}
}

func (s *tableState) recordInsert() {
	s.numItems.Add(1)
}
