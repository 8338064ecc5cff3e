//go:build linux

package sysinfo

import "golang.org/x/sys/unix"

// DefaultThreads returns the number of CPUs in the calling process's
// scheduling affinity mask, used to size the driver's default -t thread
// count to what the process can actually run on concurrently,
// rather than every CPU on the machine.
func DefaultThreads() int {
	var set unix.CPUSet

	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return fallbackThreads()
	}

	n := set.Count()
	if n < 1 {
		return fallbackThreads()
	}

	return n
}
