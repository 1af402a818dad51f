package corefoundation

// This file follows the functional-options shape used throughout the
// package: a private config struct, a small option interface implemented
// by an unexported func-wrapping type, and a resolve* helper that seeds
// defaults and applies options in order, nil-skipping gracefully.

// --- Block allocator options ---

type blockAllocatorOptions struct {
	threadSafe bool
	logger     Logger
}

// BlockAllocatorOption configures a [BlockAllocator].
type BlockAllocatorOption interface {
	applyBlockAllocator(*blockAllocatorOptions)
}

type blockAllocatorOptionFunc func(*blockAllocatorOptions)

func (f blockAllocatorOptionFunc) applyBlockAllocator(o *blockAllocatorOptions) { f(o) }

// WithThreadSafe selects the atomic, CAS-based free-list variant of
// [BlockAllocator] when enabled. The default (disabled) variant uses a
// plain pointer head and must not be shared across goroutines.
func WithThreadSafe(enabled bool) BlockAllocatorOption {
	return blockAllocatorOptionFunc(func(o *blockAllocatorOptions) {
		o.threadSafe = enabled
	})
}

// WithBlockAllocatorLogger overrides the logger used for this allocator's
// diagnostics (default: the package-level logger, see [SetLogger]).
func WithBlockAllocatorLogger(logger Logger) BlockAllocatorOption {
	return blockAllocatorOptionFunc(func(o *blockAllocatorOptions) {
		o.logger = logger
	})
}

func resolveBlockAllocatorOptions(opts []BlockAllocatorOption) *blockAllocatorOptions {
	cfg := &blockAllocatorOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyBlockAllocator(cfg)
	}
	return cfg
}

// --- Stack allocator options ---

type stackAllocatorOptions struct {
	alignment  uintptr
	maxEntries int
}

// StackAllocatorOption configures a [StackAllocator].
type StackAllocatorOption interface {
	applyStackAllocator(*stackAllocatorOptions)
}

type stackAllocatorOptionFunc func(*stackAllocatorOptions)

func (f stackAllocatorOptionFunc) applyStackAllocator(o *stackAllocatorOptions) { f(o) }

// WithAlignment sets the default alignment the allocator rounds every
// allocation's base address up to. Must be a power of two; defaults to
// pointerSize.
func WithAlignment(alignment uintptr) StackAllocatorOption {
	return stackAllocatorOptionFunc(func(o *stackAllocatorOptions) {
		o.alignment = alignment
	})
}

// WithMaxEntries bounds the number of live allocations the stack
// allocator's entry list may track at once. Defaults to 256.
func WithMaxEntries(n int) StackAllocatorOption {
	return stackAllocatorOptionFunc(func(o *stackAllocatorOptions) {
		o.maxEntries = n
	})
}

func resolveStackAllocatorOptions(opts []StackAllocatorOption) *stackAllocatorOptions {
	cfg := &stackAllocatorOptions{
		alignment:  pointerSize,
		maxEntries: 256,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyStackAllocator(cfg)
	}
	return cfg
}

// --- Thread pool options ---

type threadPoolOptions struct {
	affinity bool
	logger   Logger
}

// ThreadPoolOption configures a [ThreadPool].
type ThreadPoolOption interface {
	applyThreadPool(*threadPoolOptions)
}

type threadPoolOptionFunc func(*threadPoolOptions)

func (f threadPoolOptionFunc) applyThreadPool(o *threadPoolOptions) { f(o) }

// WithAffinity enables best-effort per-worker CPU affinity pinning.
// Enabled by default; platforms or environments that refuse the
// operation log a rate-limited warning and continue unaffected.
func WithAffinity(enabled bool) ThreadPoolOption {
	return threadPoolOptionFunc(func(o *threadPoolOptions) {
		o.affinity = enabled
	})
}

// WithThreadPoolLogger overrides the logger used for this pool's
// diagnostics (default: the package-level logger, see [SetLogger]).
func WithThreadPoolLogger(logger Logger) ThreadPoolOption {
	return threadPoolOptionFunc(func(o *threadPoolOptions) {
		o.logger = logger
	})
}

func resolveThreadPoolOptions(opts []ThreadPoolOption) *threadPoolOptions {
	cfg := &threadPoolOptions{
		affinity: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyThreadPool(cfg)
	}
	return cfg
}
