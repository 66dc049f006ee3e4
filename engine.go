package wheelsieve

import (
	"context"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/wheelsieve/internal/bitstore"
	"github.com/hupe1980/wheelsieve/internal/pool"
	"github.com/hupe1980/wheelsieve/internal/sieve"
)

// Engine creates sieves that share one worker pool and one set of limits.
// An Engine is safe for concurrent use; the sieves it creates are not.
type Engine struct {
	opts     options
	pool     *pool.Pool
	ownsPool bool
	closed   atomic.Bool
}

// NewEngine creates an engine. The worker pool is started once here and
// reused by every sieve the engine creates.
func NewEngine(optFns ...Option) *Engine {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Engine{opts: opts}
	switch {
	case opts.pool != nil:
		e.pool = opts.pool
	default:
		threads := opts.threads
		if threads <= 0 {
			threads = runtime.GOMAXPROCS(0)
		}
		if threads > 1 {
			e.pool = pool.New(threads)
			e.ownsPool = true
		}
	}
	return e
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return NewEngine()
})

// Default returns the process-wide engine. It uses GOMAXPROCS workers and
// is never closed.
func Default() *Engine {
	return defaultEngine()
}

// Threads returns the number of workers available for marking.
func (e *Engine) Threads() int {
	if e.pool == nil {
		return 1
	}
	return e.pool.Workers()
}

// New allocates a zeroed sieve for every integer in [0, bound].
func (e *Engine) New(bound uint64) (*Sieve, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	start := time.Now()
	ctx := context.Background()
	halfBits := sieve.HalfBits(bound)
	size := bitstore.SizeBytes[word](halfBits)

	bits, err := e.allocate(bound, halfBits, size)
	e.opts.metricsCollector.RecordCreate(bound, size, time.Since(start), err)
	if err != nil {
		e.opts.logger.LogCreate(ctx, bound, size, false, err)
		return nil, err
	}
	e.opts.logger.LogCreate(ctx, bound, size, bits.Mapped(), nil)

	return e.newSieve(bound, bits, size), nil
}

func (e *Engine) allocate(bound, halfBits, size uint64) (*bitstore.Store[word], error) {
	if size > math.MaxInt64 {
		return nil, &AllocationError{Bound: bound, Bytes: size, cause: bitstore.ErrTooLarge}
	}
	if err := e.opts.resources.ReserveMemory(int64(size)); err != nil {
		return nil, err
	}

	if e.opts.mmapThreshold == 0 || size < e.opts.mmapThreshold {
		return bitstore.New[word](halfBits), nil
	}

	bits, err := bitstore.NewMapped[word](halfBits)
	if err != nil {
		e.opts.resources.ReleaseMemory(int64(size))
		return nil, &AllocationError{Bound: bound, Bytes: size, cause: err}
	}
	return bits, nil
}

func (e *Engine) newSieve(bound uint64, bits *bitstore.Store[word], size uint64) *Sieve {
	s := &Sieve{
		engine:   e,
		bits:     bits,
		reserved: int64(size),
	}
	s.core = sieve.New(bound, bits, sieve.Config{
		Pool:      e.pool,
		Threshold: e.opts.threshold,
		OnMark:    e.onMark,
	})
	return s
}

func (e *Engine) onMark(p uint64, parallel bool, marks uint64) {
	e.opts.metricsCollector.RecordMark(p, parallel, marks)
	e.opts.logger.LogMark(context.Background(), p, parallel, marks)
}

// Close stops the engine's worker pool. Sieves created by the engine remain
// readable; running them afterwards marks sequentially.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	if e.ownsPool {
		e.pool.Close()
	}
	return nil
}

// WordBits returns the width in bits of the bit-store word this package was
// built with.
func WordBits() uint {
	return bitstore.Width[word]()
}
