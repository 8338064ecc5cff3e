package cht

import "sync/atomic"

// bucket is one slot of a table's bucket array. head is always an
// atomic.Pointer: the lock-free variant relies on its CAS for head
// publication, and the striped variant's lock already excludes
// concurrent writers so the atomic adds no real cost.
type bucket struct {
	head atomic.Pointer[node]
}

// find walks the chain looking for key, returning the matching node or nil.
// Safe to call without holding any lock: nodes already linked into a chain
// are never mutated structurally, only value is updated in place.
func (b *bucket) find(key uint64) *node {
	for n := b.head.Load(); n != nil; n = n.next.Load() {
		if n.key == key {
			return n
		}
	}

	return nil
}
