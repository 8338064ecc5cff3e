package cht

import "sync"

// rehash partitions old's buckets across up to threads goroutines and, for
// every node found, calls insert(key, value) — the variant-specific bulk
// insert into the new table.
//
// threads <= 0 or threads == 1 runs single-threaded; there is no point
// spinning up goroutines to rehash a handful of buckets.
func rehash(old *tableState, threads int, insert func(key, value uint64)) {
	n := old.numBuckets()

	if threads < 1 {
		threads = 1
	}

	if uint64(threads) > n {
		threads = int(n)
	}

	if threads <= 1 {
		rehashRange(old, 0, n, insert)
		return
	}

	chunk := (n + uint64(threads) - 1) / uint64(threads)
	if chunk == 0 {
		chunk = 1
	}

	var wg sync.WaitGroup

	for start := uint64(0); start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}

		wg.Add(1)

		go func(start, end uint64) {
			defer wg.Done()
			rehashRange(old, start, end, insert)
		}(start, end)
	}

	wg.Wait()
}

// rehashRange walks old.buckets[start:end] and bulk-inserts every node's
// payload via insert. Reading the old table's chains here is safe without
// any lock: the caller (Table.Resize) only runs once the driver has
// guaranteed no Lookup/Insert is in flight anywhere.
func rehashRange(old *tableState, start, end uint64, insert func(key, value uint64)) {
	for i := start; i < end; i++ {
		for n := old.buckets[i].head.Load(); n != nil; n = n.next.Load() {
			insert(n.key, n.value.Load())
		}
	}
}
