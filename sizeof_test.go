package corefoundation

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// TestCacheLineSize verifies cacheLineSize is never smaller than the
// platform's actual cache line and is a multiple of it, mirroring the
// teacher's own Test_sizeOfCacheLine check.
func TestCacheLineSize(t *testing.T) {
	actual := unsafe.Sizeof(cpu.CacheLinePad{})
	if cacheLineSize < int(actual) {
		t.Fatalf("cacheLineSize (%d) is less than actual cache line size (%d)", cacheLineSize, actual)
	}
	if cacheLineSize%int(actual) != 0 {
		t.Fatalf("cacheLineSize (%d) is not a multiple of actual cache line size (%d)", cacheLineSize, actual)
	}
}

func TestSizeOf(t *testing.T) {
	for _, tc := range [...]struct {
		name     string
		expected uintptr
		actual   uintptr
	}{
		{"pointerSize", pointerSize, unsafe.Sizeof(uintptr(0))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.actual != tc.expected {
				t.Errorf("expected %d got %d", tc.expected, tc.actual)
			}
		})
	}
}
