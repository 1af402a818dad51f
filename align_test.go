package corefoundation

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	assert.Nil(t, Allocate(0))
	assert.Nil(t, Allocate(-1))

	ptr := Allocate(64)
	require.NotNil(t, ptr)
	ForwardCopy(ptr, unsafe.Pointer(&[64]byte{}), 64) // must not panic
}

func TestAllocateAligned(t *testing.T) {
	for _, alignment := range []uintptr{1, 2, 8, 16, 32, 64, 128} {
		ptr, buf := AllocateAligned(100, alignment)
		require.NotNil(t, ptr)
		require.NotNil(t, buf)
		want := alignment
		if want < pointerSize {
			want = pointerSize
		}
		assert.Zero(t, uintptr(ptr)%want, "alignment %d", alignment)
		DeallocateAligned(buf)
	}
}

func TestAllocateAligned_InvalidAlignment(t *testing.T) {
	ptr, buf := AllocateAligned(16, 3)
	assert.Nil(t, ptr)
	assert.Nil(t, buf)
}

func TestAllocateAligned_ZeroSize(t *testing.T) {
	ptr, buf := AllocateAligned(0, 16)
	assert.Nil(t, ptr)
	assert.Nil(t, buf)
}

func TestDeallocateAligned_Nil(t *testing.T) {
	DeallocateAligned(nil) // must not panic
}

func TestForwardBackwardCopy(t *testing.T) {
	src := []byte("hello, world")
	dst := make([]byte, len(src))
	ForwardCopy(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), uintptr(len(src)))
	assert.Equal(t, src, dst)

	dst2 := make([]byte, len(src))
	BackwardCopy(unsafe.Pointer(&dst2[0]), unsafe.Pointer(&src[0]), uintptr(len(src)))
	assert.Equal(t, src, dst2)
}

func TestBackwardCopy_OverlapShiftRight(t *testing.T) {
	buf := []byte("abcdefgh")
	// shift buf[0:6] right by two, into buf[2:8]; destination starts
	// after source so BackwardCopy is the correct tool.
	BackwardCopy(unsafe.Pointer(&buf[2]), unsafe.Pointer(&buf[0]), 6)
	assert.Equal(t, []byte("ababcdef"), buf)
}

type releaseRecorder struct {
	released *int
}

func (r releaseRecorder) Release() { *r.released++ }

func TestConstructDestructAt(t *testing.T) {
	var released int
	var slot releaseRecorder
	ConstructAt(&slot, releaseRecorder{released: &released})
	assert.Equal(t, 0, released)
	DestructAt(&slot)
	assert.Equal(t, 1, released)
	assert.Nil(t, slot.released)
}

func TestDestructAt_NonDestructor(t *testing.T) {
	var slot int
	ConstructAt(&slot, 42)
	assert.Equal(t, 42, slot)
	DestructAt(&slot)
	assert.Zero(t, slot)
}

func TestCopyConstructRange(t *testing.T) {
	src := []int{1, 2, 3}
	dst := make([]int, 3)
	CopyConstructRange(dst, src)
	assert.Equal(t, src, dst)
}

func TestMoveConstructRange(t *testing.T) {
	src := []int{1, 2, 3}
	dst := make([]int, 3)
	MoveConstructRange(dst, src)
	assert.Equal(t, []int{1, 2, 3}, dst)
	assert.Equal(t, []int{0, 0, 0}, src)
}

func TestDestructRange(t *testing.T) {
	var a, b int
	released := 0
	s := []releaseRecorder{{released: &released}, {released: &released}}
	_ = a
	_ = b
	DestructRange(s)
	assert.Equal(t, 2, released)
}
