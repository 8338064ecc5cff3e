package cht

import "sync/atomic"

// node is one link in a bucket's singly linked chain.
//
// value and next are always accessed through atomics, even in the
// striped-lock variant where the owning stripe's mutex already excludes
// concurrent writers. Sharing one node type between variants keeps the
// resize/bulk-insert code (resize.go) variant-agnostic, and an atomic load
// costs nothing extra for a reader that already holds the lock.
type node struct {
	key   uint64
	value atomic.Uint64
	next  atomic.Pointer[node]
}

func newNode(key, value uint64, next *node) *node {
	n := &node{key: key}
	n.value.Store(value)
	n.next.Store(next)

	return n
}
