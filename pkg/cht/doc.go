// Package cht implements a concurrent, dynamically resizable, bucketized
// hash table mapping u64 keys to u64 values.
//
// Two interchangeable variants share the same [Table] interface but differ
// in their synchronization discipline:
//
//   - [StripedLocks]: each bucket is protected by one of a fixed-size array
//     of mutexes, selected by bucket_index mod num_locks.
//   - [LockFree]: bucket chains are mutated with atomic compare-and-swap on
//     the chain head; per-node values are updated with atomic stores.
//
// Delete is not supported: the table only ever grows a chain or overwrites
// an existing key's value. Resizing is a stop-the-world rehash driven by the
// caller — see [Table.ResizeNeeded] and [Table.Resize] — rather than something the
// table does internally, because a safe resize requires that no lookup or
// insert is in flight anywhere, a property only the caller's driver loop can
// guarantee.
package cht
