package corefoundation

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadPool_SubmitAndAwait(t *testing.T) {
	pool := NewThreadPool(4, WithAffinity(false))
	defer pool.Shutdown()

	var count atomic.Int32
	const n = 100
	for i := 0; i < n; i++ {
		task := NewTask(func(threadIndex int) { count.Add(1) })
		pool.Submit(task.Get())
	}
	pool.AwaitPendingTasks()
	assert.EqualValues(t, n, count.Load())
}

func TestThreadPool_FIFOOrderPerSubmitter(t *testing.T) {
	pool := NewThreadPool(1, WithAffinity(false))
	defer pool.Shutdown()

	var mu sync.Mutex
	var order []int
	const n = 50
	for i := 0; i < n; i++ {
		i := i
		task := NewTask(func(threadIndex int) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
		pool.Submit(task.Get())
	}
	pool.AwaitPendingTasks()

	require.Len(t, order, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i, order[i])
	}
}

func TestThreadPool_ValueTaskResult(t *testing.T) {
	pool := NewThreadPool(2, WithAffinity(false))
	defer pool.Shutdown()

	task := NewValueTask(func(threadIndex int) int { return threadIndex })
	pool.Submit(task.Get())
	result := task.Get().WaitForResult()
	assert.Greater(t, result, 0)
}

func TestThreadPool_ShutdownDrainsResidual(t *testing.T) {
	pool := NewThreadPool(2, WithAffinity(false))

	var ran atomic.Bool
	task := NewTask(func(threadIndex int) { ran.Store(true) })

	pool.mu.Lock()
	pool.shutdown.Store(true)
	pool.mu.Unlock()
	pool.cond.Broadcast()
	pool.wg.Wait()

	pool.mu.Lock()
	pool.queue = append(pool.queue, task.Get())
	pool.mu.Unlock()

	pool.Shutdown()
	assert.True(t, ran.Load())
}

func TestThreadPool_AwaitPendingTasks_Timely(t *testing.T) {
	pool := NewThreadPool(4, WithAffinity(false))
	defer pool.Shutdown()

	task := NewTask(func(threadIndex int) { time.Sleep(10 * time.Millisecond) })
	pool.Submit(task.Get())

	done := make(chan struct{})
	go func() {
		pool.AwaitPendingTasks()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AwaitPendingTasks did not return")
	}
}
