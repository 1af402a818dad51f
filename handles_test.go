package corefoundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countedWidget struct {
	RefCounted
	name     string
	released *int
}

func (w *countedWidget) Release() {
	if w.released != nil {
		*w.released++
	}
}

func TestOwned_CreateCloneRelease(t *testing.T) {
	var released int
	o := Create(&countedWidget{name: "a", released: &released})
	require.True(t, o.IsValid())
	assert.EqualValues(t, 1, o.RefCount())

	clone := o.Clone()
	assert.EqualValues(t, 2, o.RefCount())
	assert.Equal(t, o.Get(), clone.Get())

	o.Release()
	assert.Equal(t, 0, released)
	assert.EqualValues(t, 1, clone.RefCount())

	clone.Release()
	assert.Equal(t, 1, released)
}

func TestOwned_ZeroValue(t *testing.T) {
	var o Owned[*countedWidget]
	assert.False(t, o.IsValid())
	assert.EqualValues(t, 0, o.RefCount())
	o.Release() // must not panic
	clone := o.Clone()
	assert.False(t, clone.IsValid())
}

func TestUnique_CreateTakeRelease(t *testing.T) {
	var released int
	u := CreateUnique(&countedWidget{name: "b", released: &released})
	require.True(t, u.IsValid())

	taken := u.Take()
	assert.False(t, u.IsValid())
	assert.NotNil(t, taken)

	// re-wrap and release via a fresh handle pointed at the same object
	u2 := Unique[*countedWidget]{}
	u2.ptr = taken
	u2.Release()
	assert.Equal(t, 1, released)
}

func TestUnique_AsOwned(t *testing.T) {
	var released int
	u := CreateUnique(&countedWidget{name: "c", released: &released})
	o := u.AsOwned()
	assert.False(t, u.IsValid())
	require.True(t, o.IsValid())
	assert.EqualValues(t, 1, o.RefCount())

	clone := o.Clone()
	o.Release()
	assert.Equal(t, 0, released)
	clone.Release()
	assert.Equal(t, 1, released)
}

func TestUnique_ZeroValue(t *testing.T) {
	var u Unique[*countedWidget]
	assert.False(t, u.IsValid())
	u.Release() // must not panic
	o := u.AsOwned()
	assert.False(t, o.IsValid())
}

func TestRefCounted_ConcurrentCloneRelease(t *testing.T) {
	var released int
	o := Create(&countedWidget{name: "d", released: &released})

	const n = 64
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			c := o.Clone()
			c.Release()
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
	assert.EqualValues(t, 1, o.RefCount())
	o.Release()
	assert.Equal(t, 1, released)
}
