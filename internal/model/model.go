// Package model provides a deliberately simple, in-memory reference model of
// cht.Table's observable behavior, used by a property test
// (model_test.go) to diff a real [cht.Table] against a plain Go map driven
// by the same operation sequence.
//
// The model favors clarity over performance: it has no concurrency story of
// its own. Tests apply operations to it single-threaded, at the same
// quiescent points they apply them to the real table.
package model

import "github.com/rfrost096/cht/pkg/cht"

// Map mirrors the key/value contents of a cht.Table after a sequence of
// Insert calls at a quiescent point.
type Map map[uint64]uint64

// Insert applies the same sentinel-rejection and overwrite semantics as
// cht.Table.Insert.
func (m Map) Insert(key, value uint64) {
	if key == cht.InvalidKey || value == cht.InvalidValue {
		return
	}

	m[key] = value
}

// Lookup mirrors cht.Table.Lookup.
func (m Map) Lookup(key uint64) uint64 {
	if key == cht.InvalidKey {
		return cht.InvalidValue
	}

	if v, ok := m[key]; ok {
		return v
	}

	return cht.InvalidValue
}

// Snapshot reads every key out of tbl's model-visible surface by probing
// the key set the test drove it with — cht.Table has no iteration (a
// deliberate Non-goal), so the test supplies the candidate key set and the
// model is only ever compared key-by-key, never enumerated independently.
func Snapshot(tbl cht.Table, keys []uint64) Map {
	out := make(Map, len(keys))

	for _, k := range keys {
		if v := tbl.Lookup(k); v != cht.InvalidValue {
			out[k] = v
		}
	}

	return out
}
