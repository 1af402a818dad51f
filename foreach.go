package corefoundation

// Number is the set of built-in numeric types [ForEachSum] can
// accumulate a result over.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// partitionBounds divides [0, n) into partitions contiguous, near-equal
// ranges using original_source's `(i+1)*size/partitions` formula, which
// spreads the remainder across the partitions (n=10 over 4 gives sizes
// 2, 3, 2, 3) rather than lumping it onto the last one.
func partitionBounds(n, partitions, i int) (start, end int) {
	start = i * n / partitions
	end = (i + 1) * n / partitions
	return start, end
}

// ForEach partitions the index range [0, n) across pool.WorkerCount()+1
// partitions — one per worker, plus the calling goroutine — and runs fn
// once per partition with its [start, end) bounds. It blocks until every
// partition has completed, including the one it runs on the caller's own
// goroutine, the Go port of original_source's BlockingForEach: the
// caller always participates, so if the caller happens to already be a
// pool worker it ends up doing double its fair share — the same
// documented tradeoff.
//
// fn receives threadIndex 0 for the caller's own partition and the
// pool's worker index (1-based) for the rest.
func ForEach(pool *ThreadPool, n int, fn func(threadIndex, start, end int)) {
	if n <= 0 {
		return
	}
	partitions := pool.WorkerCount() + 1
	if partitions > n {
		partitions = n
	}
	if partitions <= 1 {
		fn(0, 0, n)
		return
	}

	tasks := make([]Owned[*Task], 0, partitions-1)
	for i := 1; i < partitions; i++ {
		start, end := partitionBounds(n, partitions, i)
		task := NewTask(func(threadIndex int) { fn(threadIndex, start, end) })
		tasks = append(tasks, task)
		pool.Submit(task.Get())
	}

	_, end := partitionBounds(n, partitions, 0)
	fn(0, 0, end)

	for _, task := range tasks {
		task.Get().WaitUntilFinished()
		task.Release()
	}
}

// ForEachSum is [ForEach] specialized for partitions that each produce a
// partial value of type T, summed into the final result once every
// partition has completed.
func ForEachSum[T Number](pool *ThreadPool, n int, fn func(threadIndex, start, end int) T) T {
	var zero T
	if n <= 0 {
		return zero
	}
	partitions := pool.WorkerCount() + 1
	if partitions > n {
		partitions = n
	}
	if partitions <= 1 {
		return fn(0, 0, n)
	}

	results := make([]T, partitions)
	tasks := make([]Owned[*ValueTask[T]], 0, partitions-1)
	for i := 1; i < partitions; i++ {
		start, end := partitionBounds(n, partitions, i)
		task := NewValueTask(func(threadIndex int) T { return fn(threadIndex, start, end) })
		tasks = append(tasks, task)
		pool.Submit(task.Get())
	}

	_, end := partitionBounds(n, partitions, 0)
	results[0] = fn(0, 0, end)

	for i, task := range tasks {
		results[i+1] = task.Get().WaitForResult()
		task.Release()
	}

	sum := zero
	for _, r := range results {
		sum += r
	}
	return sum
}
