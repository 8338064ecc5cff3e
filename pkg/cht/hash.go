package cht

// bucketIndex maps key to a bucket in [0, numBuckets) via the table's single
// hash function: multiply by 37, add 13, reduce modulo numBuckets.
//
// This exact function must not change: the distribution and saturation
// behavior that the resize trigger and the test suite depend on
// are both keyed to it. There is no secondary hash — collisions are resolved
// by chaining only.
func bucketIndex(key, numBuckets uint64) uint64 {
	return (key*37 + 13) % numBuckets
}
