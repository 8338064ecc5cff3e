package cht

import (
	"sync"
	"sync/atomic"
)

// stripedTable is the striped-lock variant. Each operation acquires at most one bucket lock and never
// holds two locks at once, so it is deadlock-free by construction.
type stripedTable struct {
	state atomic.Pointer[tableState]
	locks atomic.Pointer[lockArray]
}

func newStripedTable(st *tableState, numLocks uint64) *stripedTable {
	t := &stripedTable{}
	t.state.Store(st)
	t.locks.Store(newLockArray(numLocks))

	return t
}

// locate returns the bucket and the lock guarding it for key, from the
// state and lock array the caller passes in. Callers load state and locks
// with two separate atomic loads; the pair matches only because Resize
// never runs concurrently with Lookup/Insert.
func locate(s *tableState, la *lockArray, key uint64) (*bucket, *sync.Mutex) {
	idx := bucketIndex(key, s.numBuckets())
	return &s.buckets[idx], la.lockFor(idx)
}

func (t *stripedTable) Lookup(key uint64) uint64 {
	if key == InvalidKey {
		return InvalidValue
	}

	b, lock := locate(t.state.Load(), t.locks.Load(), key)

	lock.Lock()
	defer lock.Unlock()

	if n := b.find(key); n != nil {
		return n.value.Load()
	}

	return InvalidValue
}

func (t *stripedTable) Insert(key, value uint64) {
	if key == InvalidKey || value == InvalidValue {
		return
	}

	s := t.state.Load()
	b, lock := locate(s, t.locks.Load(), key)

	lock.Lock()
	defer lock.Unlock()

	depth := 1

	for n := b.head.Load(); n != nil; n = n.next.Load() {
		if n.key == key {
			n.value.Store(value)
			return
		}

		depth++
	}

	b.head.Store(newNode(key, value, b.head.Load()))
	s.recordInsert()
	s.maybeTriggerResize(depth)
}

func (t *stripedTable) Len() int64 {
	return t.state.Load().numItems.Load()
}

func (t *stripedTable) NumBuckets() uint64 {
	return t.state.Load().numBuckets()
}

func (t *stripedTable) ResizeNeeded() bool {
	return t.state.Load().resizeNeeded.Load()
}

// resizeInsertStriped bulk-inserts a rehashed (key, value) pair into the new table
// under the new table's own stripe lock, without a uniqueness check.
func resizeInsertStriped(s *tableState, la *lockArray, key, value uint64) {
	b, lock := locate(s, la, key)

	lock.Lock()
	b.head.Store(newNode(key, value, b.head.Load()))
	lock.Unlock()
}

func (t *stripedTable) Resize(threads int) {
	oldState := t.state.Load()
	oldLocks := t.locks.Load()

	newState := newTableState(oldState.numBuckets()*2, oldState.resizeEnabled)
	newState.numItems.Store(oldState.numItems.Load())
	newLocks := newLockArray(oldLocks.size() * 2)

	rehash(oldState, threads, func(key, value uint64) {
		resizeInsertStriped(newState, newLocks, key, value)
	})

	t.state.Store(newState)
	t.locks.Store(newLocks)
}

func (t *stripedTable) Close() error {
	t.state.Store(newTableState(1, false))
	t.locks.Store(newLockArray(1))

	return nil
}
