//go:build !linux

package sysinfo

// DefaultThreads falls back to runtime.NumCPU on platforms without
// affinity-mask scheduling (golang.org/x/sys/unix.SchedGetaffinity is
// Linux-only).
func DefaultThreads() int {
	return fallbackThreads()
}
