package corefoundation

import "sync"

// Invokable is implemented by [Task] and [ValueTask], the two task
// shapes a [ThreadPool] accepts. Its method is unexported on purpose: tasks are
// only ever constructed via [NewTask]/[NewValueTask], mirroring
// original_source's ITask, which a user extends but a task manager only
// ever calls through the base interface.
type Invokable interface {
	invoke(threadIndex int)
}

// completion is the single-shot finished/unfinished state machine shared
// by [Task] and [ValueTask]: a task starts unfinished, transitions to
// finished exactly once (notifyCompleted), and may only be returned to
// unfinished by an explicit Reset once finished. Completion is signaled
// by closing a channel rather than a condition variable, the same
// broadcast-to-all-waiters idiom eventloop's promise type uses for
// ToChannel: any number of goroutines can WaitUntilFinished concurrently.
type completion struct {
	mu   sync.Mutex
	done chan struct{}
}

func newCompletion() completion {
	return completion{done: make(chan struct{})}
}

// IsFinished reports whether the task has completed execution.
func (c *completion) IsFinished() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// WaitUntilFinished blocks until the task has completed execution.
// Multiple goroutines may call this concurrently for the same task, as
// long as none of them calls Reset immediately after waking — doing so
// races a late waiter against a task that has already been resubmitted,
// exactly the hazard original_source's ITask documents.
func (c *completion) WaitUntilFinished() {
	<-c.done
}

func (c *completion) notifyCompleted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
		// already finished; invoke must not be called twice on the same
		// generation, but tolerate it rather than panic.
	default:
		close(c.done)
	}
}

// Reset prepares a finished task for resubmission. Calling it before the
// task has finished is a misuse: in [Debug] mode it is reported through
// the package logger and returns [ErrTaskMisuse]; outside Debug mode the
// call is silently ignored.
func (c *completion) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
		c.done = make(chan struct{})
		return nil
	default:
		if Debug() {
			assertf("task: Reset called before the task finished")
			return ErrTaskMisuse
		}
		return nil
	}
}

// Task is a callable, reference-counted unit of work that takes a
// worker-thread index and returns no result — the Go analogue of
// original_source's Task<void>. Construct one with [NewTask]; submit it
// to a [ThreadPool] with [ThreadPool.Submit].
type Task struct {
	RefCounted
	completion
	fn func(threadIndex int)
}

// NewTask wraps fn as a [Task], returning it already held by an [Owned]
// handle with a refcount of one.
func NewTask(fn func(threadIndex int)) Owned[*Task] {
	return Create(&Task{completion: newCompletion(), fn: fn})
}

func (t *Task) invoke(threadIndex int) {
	t.fn(threadIndex)
	t.notifyCompleted()
}

// ValueTask is a callable, reference-counted unit of work that takes a
// worker-thread index and produces a result of type R — the Go analogue
// of original_source's Task<T>. Construct one with [NewValueTask].
type ValueTask[R any] struct {
	RefCounted
	completion
	fn     func(threadIndex int) R
	result R
}

// NewValueTask wraps fn as a [ValueTask], returning it already held by
// an [Owned] handle with a refcount of one.
func NewValueTask[R any](fn func(threadIndex int) R) Owned[*ValueTask[R]] {
	return Create(&ValueTask[R]{completion: newCompletion(), fn: fn})
}

func (t *ValueTask[R]) invoke(threadIndex int) {
	t.result = t.fn(threadIndex)
	t.notifyCompleted()
}

// WaitForResult blocks until the task has finished executing, then
// returns its result. Calling it before the task has ever been
// submitted blocks forever, same as WaitUntilFinished would.
func (t *ValueTask[R]) WaitForResult() R {
	t.WaitUntilFinished()
	return t.result
}
