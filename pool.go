package corefoundation

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ThreadPool is a fixed-size worker pool that executes [Invokable] tasks
// (see [Task] and [ValueTask]) submitted to a single mutex-protected FIFO
// queue — the Go port of original_source's ThreadPool. The pool is not
// resizable once created: original_source's author explicitly deferred a
// lock-free queue until profiling justified the complexity, and this
// port makes the same call.
//
// Worker threads are 1-indexed when calling into a task, reserving index
// 0 for callers that want to partition work so the submitting goroutine
// (conventionally "thread 0") can also participate; see [ForEach].
type ThreadPool struct {
	mu    sync.Mutex
	cond  *sync.Cond
	queue []Invokable

	shutdown   atomic.Bool
	pending    atomic.Int32
	terminated atomic.Int32

	workers  int
	wg       sync.WaitGroup
	affinity bool
	logger   Logger
}

// NewThreadPool starts workers goroutines and returns the pool managing
// them. The pool must eventually be shut down with [ThreadPool.Shutdown].
func NewThreadPool(workers int, opts ...ThreadPoolOption) *ThreadPool {
	cfg := resolveThreadPoolOptions(opts)
	p := &ThreadPool{
		workers:  workers,
		affinity: cfg.affinity,
		logger:   cfg.logger,
	}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.workerLoop(i + 1)
	}
	return p
}

func (p *ThreadPool) workerLoop(threadIndex int) {
	defer p.wg.Done()
	defer p.terminated.Add(1)

	if p.affinity {
		// Affinity is pinned for the worker's entire lifetime, so the
		// goroutine must not migrate to a different OS thread afterward.
		runtime.LockOSThread()
		if err := setAffinity(threadIndex); err != nil {
			warnRateLimited(p.logger, "affinity", "failed to pin worker thread affinity", map[string]any{
				"worker": threadIndex,
				"error":  err.Error(),
			})
		}
	}

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.shutdown.Load() {
			p.cond.Wait()
		}
		// Shutdown wins even if work is still queued: a worker that
		// wakes up during shutdown exits immediately rather than
		// draining, exactly as original_source's worker loop checks the
		// shutdown flag before looking at the queue. Whatever is left
		// behind is drained serially by Shutdown itself.
		if p.shutdown.Load() {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task.invoke(threadIndex)
		p.pending.Add(-1)
	}
}

// Submit enqueues task for execution by the next available worker.
// Returns [ErrShutdown], without enqueueing task, if the pool has
// already begun shutting down.
func (p *ThreadPool) Submit(task Invokable) error {
	if p.shutdown.Load() {
		return ErrShutdown
	}
	p.pending.Add(1)
	p.mu.Lock()
	if p.shutdown.Load() {
		p.mu.Unlock()
		p.pending.Add(-1)
		return ErrShutdown
	}
	p.queue = append(p.queue, task)
	p.mu.Unlock()
	p.cond.Signal()
	return nil
}

// AwaitPendingTasks blocks the calling goroutine until every submitted
// task (queued or in flight) has finished, busy-waiting with
// [runtime.Gosched] the same way original_source's implementation yields
// rather than blocking on a condition variable here — pending-count
// transitions are frequent enough in the intended workload that the
// cost of parking and waking a waiter would dominate.
func (p *ThreadPool) AwaitPendingTasks() {
	for p.pending.Load() != 0 {
		runtime.Gosched()
	}
}

// Shutdown stops accepting new work at the queue level, wakes every
// worker so it can observe the shutdown flag and exit, then waits for
// all of them to terminate. Any tasks still queued when Shutdown is
// called (a caller bug — the caller is responsible for ensuring
// submitted work has completed first) are drained and executed serially,
// on the calling goroutine, with a rate-limited warning logged once per
// category.
func (p *ThreadPool) Shutdown() {
	p.mu.Lock()
	p.shutdown.Store(true)
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()

	p.mu.Lock()
	residual := p.queue
	p.queue = nil
	p.mu.Unlock()

	if len(residual) > 0 {
		warnRateLimited(p.logger, "shutdown-residual",
			"destroying thread pool with pending tasks; executing them serially", map[string]any{
				"count": len(residual),
			})
		for _, task := range residual {
			task.invoke(0)
			p.pending.Add(-1)
		}
	}
}

// WorkerCount returns the fixed number of worker goroutines the pool
// was constructed with.
func (p *ThreadPool) WorkerCount() int { return p.workers }
