package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// ErrClosed is returned when submitting to a closed pool.
var ErrClosed = errors.New("pool: closed")

// slot holds per-worker counters on its own cache line so that workers
// bumping their counters do not contend.
type slot struct {
	tasks atomic.Uint64
	_     cpu.CacheLinePad
}

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	workers  int
	workCh   chan func()
	stopCh   chan struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool
	submitMu sync.RWMutex
	slots    []slot
}

// New creates a pool with the given number of workers.
// A non-positive count uses runtime.GOMAXPROCS(0).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		workCh:  make(chan func(), workers*2),
		stopCh:  make(chan struct{}),
		slots:   make([]slot, workers),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(&p.slots[i])
	}

	return p
}

func (p *Pool) worker(s *slot) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			// Drain what was queued before Close.
			for {
				select {
				case task, ok := <-p.workCh:
					if !ok {
						return
					}
					task()
					s.tasks.Add(1)
				default:
					return
				}
			}
		case task, ok := <-p.workCh:
			if !ok {
				return
			}
			task()
			s.tasks.Add(1)
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit enqueues a task and returns without waiting for it.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.closed.Load() {
		return ErrClosed
	}

	select {
	case p.workCh <- task:
		return nil
	case <-p.stopCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes fn(0) .. fn(n-1) on the pool and waits for all of them.
// If a task cannot be submitted, Run waits for the tasks already submitted
// and returns the error; fn is then not called for the remaining indices.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		err := p.Submit(ctx, func() {
			defer wg.Done()
			fn(i)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return nil
}

// Stats returns the number of tasks each worker has completed.
func (p *Pool) Stats() []uint64 {
	out := make([]uint64, len(p.slots))
	for i := range p.slots {
		out[i] = p.slots[i].tasks.Load()
	}
	return out
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Close stops the workers after draining queued tasks. It is idempotent.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.submitMu.Lock()
	close(p.stopCh)
	close(p.workCh)
	p.submitMu.Unlock()

	p.wg.Wait()
}
