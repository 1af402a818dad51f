//go:build linux

package corefoundation

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// setAffinity pins the calling OS thread to core (threadIndex %
// runtime.NumCPU()), the same modulo assignment original_source's
// SetAffinityAndName uses on Linux via pthread_setaffinity_np. The
// caller must have already called runtime.LockOSThread, or the pinning
// is meaningless the moment the goroutine migrates.
func setAffinity(threadIndex int) error {
	totalCores := runtime.NumCPU()
	if totalCores <= 0 {
		return nil
	}
	coreID := threadIndex % totalCores

	var set unix.CPUSet
	set.Zero()
	set.Set(coreID)
	return unix.SchedSetaffinity(0, &set)
}
