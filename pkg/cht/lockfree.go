package cht

import "sync/atomic"

// lockFreeTable is the lock-free variant. Readers never block: a lookup is
// a single, wait-free pass over a bounded chain. Writers retry a
// compare-and-swap on the bucket head until it succeeds or they find the
// key already present.
type lockFreeTable struct {
	state atomic.Pointer[tableState]
}

func newLockFreeTable(st *tableState) *lockFreeTable {
	t := &lockFreeTable{}
	t.state.Store(st)

	return t
}

func (t *lockFreeTable) Lookup(key uint64) uint64 {
	if key == InvalidKey {
		return InvalidValue
	}

	s := t.state.Load()
	b := s.bucketFor(key)

	if n := b.find(key); n != nil {
		return n.value.Load()
	}

	return InvalidValue
}

// Insert implements the insert retry loop:
//  1. snapshot expected = head
//  2. scan from expected; update in place on a match
//  3. otherwise CAS head from expected to a new node chained onto expected
//  4. on CAS failure, retry from (1) against the (possibly changed) head
//
// atomic.Pointer.CompareAndSwap gives the release-on-success / acquire-on-load
// ordering the Go memory model already requires of atomic.Pointer, so a
// reader that observes the new head also observes the new node's next field.
func (t *lockFreeTable) Insert(key, value uint64) {
	if key == InvalidKey || value == InvalidValue {
		return
	}

	s := t.state.Load()
	b := s.bucketFor(key)

	for {
		expected := b.head.Load()

		depth := 1
		found := false

		for n := expected; n != nil; n = n.next.Load() {
			if n.key == key {
				n.value.Store(value)
				found = true

				break
			}

			depth++
		}

		if found {
			return
		}

		candidate := newNode(key, value, expected)
		if b.head.CompareAndSwap(expected, candidate) {
			s.recordInsert()
			s.maybeTriggerResize(depth)

			return
		}
		// Lost the race to a concurrent inserter; retry against the new head.
	}
}

func (t *lockFreeTable) Len() int64 {
	return t.state.Load().numItems.Load()
}

func (t *lockFreeTable) NumBuckets() uint64 {
	return t.state.Load().numBuckets()
}

func (t *lockFreeTable) ResizeNeeded() bool {
	return t.state.Load().resizeNeeded.Load()
}

// resizeInsertLockFree CAS-prepends a rehashed (key, value) pair into the
// new table without a uniqueness check.
func resizeInsertLockFree(s *tableState, key, value uint64) {
	b := s.bucketFor(key)

	for {
		expected := b.head.Load()
		candidate := newNode(key, value, expected)

		if b.head.CompareAndSwap(expected, candidate) {
			return
		}
	}
}

func (t *lockFreeTable) Resize(threads int) {
	oldState := t.state.Load()

	newState := newTableState(oldState.numBuckets()*2, oldState.resizeEnabled)
	newState.numItems.Store(oldState.numItems.Load())

	rehash(oldState, threads, func(key, value uint64) {
		resizeInsertLockFree(newState, key, value)
	})

	t.state.Store(newState)
}

func (t *lockFreeTable) Close() error {
	t.state.Store(newTableState(1, false))

	return nil
}
