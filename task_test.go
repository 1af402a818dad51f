package corefoundation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_InvokeAndWait(t *testing.T) {
	var ran bool
	task := NewTask(func(threadIndex int) { ran = true })
	require.False(t, task.Get().IsFinished())

	task.Get().invoke(3)
	assert.True(t, ran)
	assert.True(t, task.Get().IsFinished())

	done := make(chan struct{})
	go func() {
		task.Get().WaitUntilFinished()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitUntilFinished did not return for an already-finished task")
	}
	task.Release()
}

func TestTask_Reset(t *testing.T) {
	var count int
	task := NewTask(func(threadIndex int) { count++ })
	task.Get().invoke(0)
	assert.Equal(t, 1, count)
	assert.True(t, task.Get().IsFinished())

	require.NoError(t, task.Get().Reset())
	assert.False(t, task.Get().IsFinished())

	task.Get().invoke(0)
	assert.Equal(t, 2, count)
	task.Release()
}

func TestTask_Reset_BeforeFinished(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	task := NewTask(func(threadIndex int) {})
	err := task.Get().Reset()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskMisuse)
	task.Release()
}

func TestTask_MultipleWaiters(t *testing.T) {
	task := NewTask(func(threadIndex int) {})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.Get().WaitUntilFinished()
		}()
	}
	time.Sleep(10 * time.Millisecond)
	task.Get().invoke(0)

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("not all waiters woke up")
	}
	task.Release()
}

func TestValueTask_WaitForResult(t *testing.T) {
	task := NewValueTask(func(threadIndex int) int { return threadIndex * 2 })
	task.Get().invoke(21)
	assert.Equal(t, 42, task.Get().WaitForResult())
	task.Release()
}

func TestValueTask_RefCounting(t *testing.T) {
	task := NewValueTask(func(threadIndex int) string { return "done" })
	assert.EqualValues(t, 1, task.RefCount())
	clone := task.Clone()
	assert.EqualValues(t, 2, task.RefCount())
	clone.Release()
	task.Release()
}
