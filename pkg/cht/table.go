package cht

import "math"

const (
	// InvalidKey is the reserved key sentinel. Insert silently drops it;
	// Lookup returns InvalidValue immediately without touching any bucket.
	InvalidKey uint64 = math.MaxUint64

	// InvalidValue is the reserved value sentinel, also used as Lookup's
	// miss return. Insert silently drops it.
	InvalidValue uint64 = math.MaxUint64

	// MaxChainSize is the chain length (counting the newly inserted node)
	// that marks a bucket as overdue for a resize.
	MaxChainSize = 8
)

// Variant selects a Table's synchronization discipline. Both variants honor
// the identical external contract described in doc.go.
type Variant int

const (
	// StripedLocks protects each bucket with one of a fixed array of mutexes.
	StripedLocks Variant = iota
	// LockFree mutates bucket chains with atomic compare-and-swap.
	LockFree
)

func (v Variant) String() string {
	switch v {
	case StripedLocks:
		return "striped"
	case LockFree:
		return "lockfree"
	default:
		return "unknown"
	}
}

// Config configures [New].
type Config struct {
	// NumBuckets is the initial bucket count. Must be >= 1.
	NumBuckets uint64

	// NumLocks is the stripe-lock array size for [StripedLocks]. Ignored by
	// [LockFree]. Must be >= 1 when Variant is StripedLocks.
	NumLocks uint64

	// Variant selects the synchronization discipline.
	Variant Variant

	// ResizeEnabled controls whether a long chain sets the resize-needed
	// flag. When false, chains grow unbounded and no flag is ever raised:
	// this is not an error, just linearly degrading lookup performance.
	ResizeEnabled bool
}

// Table is the shared contract for both variants.
type Table interface {
	// Lookup returns the value stored under key, or InvalidValue if absent
	// or if key == InvalidKey.
	Lookup(key uint64) uint64

	// Insert stores value under key, overwriting any existing value for
	// key. Silently drops the sentinel keys/values. Never returns an error;
	// invalid inputs are a no-op by design.
	Insert(key, value uint64)

	// Len returns the number of live keys.
	Len() int64

	// NumBuckets returns the current bucket count.
	NumBuckets() uint64

	// ResizeNeeded reports whether an insert has observed a chain at or
	// beyond [MaxChainSize] since the last [Table.Resize]. Polled by the driver
	// between task batches.
	ResizeNeeded() bool

	// Resize performs the collective stop-the-world rehash, doubling the
	// bucket (and, for StripedLocks, lock) count. The caller
	// must guarantee no Lookup/Insert is in flight on any goroutine; Resize
	// itself fans the rehash work out across threads goroutines.
	//
	// Resize is not safe to call concurrently with itself or with
	// Lookup/Insert — that exclusion is the driver's responsibility
	// (internal/driver), not the Table's.
	Resize(threads int)

	// Close releases the table's contents by swapping in an empty
	// one-bucket table. Operations after Close act on that empty table:
	// Lookup returns InvalidValue for every key not inserted since, and
	// Insert still stores values. ErrClosed is never returned.
	Close() error
}

// New creates a Table per cfg.
func New(cfg Config) (Table, error) {
	if cfg.NumBuckets < 1 {
		return nil, ErrInvalidConfig
	}

	if cfg.Variant == StripedLocks && cfg.NumLocks < 1 {
		return nil, ErrInvalidConfig
	}

	st := newTableState(cfg.NumBuckets, cfg.ResizeEnabled)

	switch cfg.Variant {
	case StripedLocks:
		return newStripedTable(st, cfg.NumLocks), nil
	case LockFree:
		return newLockFreeTable(st), nil
	default:
		return nil, ErrInvalidConfig
	}
}
