// Package sysinfo picks a default worker-thread count for the driver from the host's usable CPU set rather than a fixed
// constant.
package sysinfo

import "runtime"

func fallbackThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}

	return n
}
