//go:build !linux

package corefoundation

// setAffinity is a no-op on platforms without a wired-in affinity API.
// original_source supports Windows and POSIX via SetThreadAffinityMask
// and pthread_setaffinity_np respectively; only the Linux path is wired
// here (golang.org/x/sys/unix.SchedSetaffinity), so other platforms
// report success without pinning anything — consistent with affinity
// being a best-effort hint throughout this package.
func setAffinity(threadIndex int) error {
	return nil
}
