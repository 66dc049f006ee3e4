package sieve

import (
	"context"
	"iter"
	"math"

	"github.com/hupe1980/wheelsieve/internal/bitstore"
	"github.com/hupe1980/wheelsieve/internal/partition"
	"github.com/hupe1980/wheelsieve/internal/pool"
	"github.com/hupe1980/wheelsieve/internal/wheel"
)

// DefaultThreshold is the number of marks per worker a prime must offer
// before its marking is split across the pool.
const DefaultThreshold = 300

// seedPrimes are the primes the wheel skips; the bit store never represents them.
var seedPrimes = [...]uint64{2, 3, 5}

// Config controls how a Sieve marks composites.
type Config struct {
	// Pool runs parallel marking. Nil means sequential marking only.
	Pool *pool.Pool
	// Threshold is the per-worker mark count above which marking goes
	// parallel. Zero means DefaultThreshold.
	Threshold uint64
	// OnMark, if set, is called after each sieving prime has been marked.
	OnMark func(p uint64, parallel bool, marks uint64)
}

// Stats summarizes the marking phase.
type Stats struct {
	// Primes is the number of sieving primes whose multiples were marked.
	Primes uint64
	// Sequential is the number of primes marked by a single loop.
	Sequential uint64
	// Parallel is the number of primes marked across the pool.
	Parallel uint64
	// Marks is the number of bit writes, including writes to already set bits.
	Marks uint64
}

// Sieve is the state of one sieve computation.
type Sieve[W bitstore.Word] struct {
	bits    *bitstore.Store[W]
	bound   uint64
	halfEnd uint64
	cfg     Config
	stats   Stats
}

// HalfBits returns the number of half-indices a store for bound must address.
func HalfBits(bound uint64) uint64 {
	return bound / 2
}

// New creates a sieve for bound over a zeroed store sized by HalfBits(bound).
func New[W bitstore.Word](bound uint64, bits *bitstore.Store[W], cfg Config) *Sieve[W] {
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Sieve[W]{
		bits:  bits,
		bound: bound,
		// Exclusive end of the marking range. For odd bounds this includes
		// the half-index of the bound itself.
		halfEnd: bound/2 + bound&1,
		cfg:     cfg,
	}
}

// Bound returns the inclusive upper limit.
func (s *Sieve[W]) Bound() uint64 { return s.bound }

// Bits returns the underlying store.
func (s *Sieve[W]) Bits() *bitstore.Store[W] { return s.bits }

// Stats returns marking statistics gathered by the last Run.
func (s *Sieve[W]) Stats() Stats { return s.stats }

// Run marks every odd composite up to the bound. Statistics restart on
// every call.
func (s *Sieve[W]) Run() {
	s.stats = Stats{}
	qh := (isqrt(s.bound) + 1) >> 1
	for c := wheel.NewHalfCursor(); c.Pos() <= qh; c.Next() {
		h := c.Pos()
		if s.bits.Test(h) {
			continue
		}
		s.Mark(2*h + 1)
	}
}

// Mark sets the bits of all odd multiples of the prime p from p² upward,
// choosing between sequential and parallel marking by workload.
func (s *Sieve[W]) Mark(p uint64) {
	start := p * p / 2
	if start >= s.halfEnd {
		return
	}

	if workers := s.workers(); workers > 1 {
		work := (s.bound - p*p) / (2 * p)
		if work > uint64(workers)*s.cfg.Threshold {
			if s.markParallel(p, workers) {
				return
			}
		}
	}
	s.MarkSequential(p)
}

// MarkSequential marks the multiples of p with a single strided loop.
func (s *Sieve[W]) MarkSequential(p uint64) {
	start := p * p / 2
	if start >= s.halfEnd {
		return
	}
	s.bits.SetStride(start, s.halfEnd, p)
	s.record(p, false, partition.Work(start, s.halfEnd, p))
}

// MarkParallel marks the multiples of p across the pool regardless of
// workload. Without a usable pool it marks sequentially.
func (s *Sieve[W]) MarkParallel(p uint64) {
	if p*p/2 >= s.halfEnd {
		return
	}
	if workers := s.workers(); workers > 0 && s.markParallel(p, workers) {
		return
	}
	s.MarkSequential(p)
}

func (s *Sieve[W]) markParallel(p uint64, workers int) bool {
	start := p * p / 2
	ranges := partition.Split(start, s.halfEnd, p, s.bits.Width(), workers)

	err := s.cfg.Pool.Run(context.Background(), len(ranges), func(i int) {
		r := ranges[i]
		s.bits.SetStride(r.Start, r.End, p)
	})
	if err != nil {
		// The pool was closed underneath us. Some ranges may be marked
		// already; marking is idempotent, so the caller redoes it serially.
		return false
	}

	s.record(p, true, partition.Work(start, s.halfEnd, p))
	return true
}

func (s *Sieve[W]) workers() int {
	if s.cfg.Pool == nil || s.cfg.Pool.Closed() {
		return 0
	}
	return s.cfg.Pool.Workers()
}

func (s *Sieve[W]) record(p uint64, parallel bool, marks uint64) {
	s.stats.Primes++
	s.stats.Marks += marks
	if parallel {
		s.stats.Parallel++
	} else {
		s.stats.Sequential++
	}
	if s.cfg.OnMark != nil {
		s.cfg.OnMark(p, parallel, marks)
	}
}

// Count returns the number of primes up to and including the bound.
func (s *Sieve[W]) Count() uint64 {
	var n uint64
	for _, p := range seedPrimes {
		if p <= s.bound {
			n++
		}
	}
	for c := wheel.NewIntCursor(); c.Pos() <= s.bound; c.Next() {
		if !s.bits.Test(c.Pos() >> 1) {
			n++
		}
	}
	return n
}

// Primes yields the primes up to the bound in ascending order.
func (s *Sieve[W]) Primes() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for _, p := range seedPrimes {
			if p > s.bound || !yield(p) {
				return
			}
		}
		for c := wheel.NewIntCursor(); c.Pos() <= s.bound; c.Next() {
			if s.bits.Test(c.Pos()>>1) {
				continue
			}
			if !yield(c.Pos()) {
				return
			}
		}
	}
}

// IsPrime reports whether n is prime. n must not exceed the bound.
func (s *Sieve[W]) IsPrime(n uint64) bool {
	switch {
	case n < 2:
		return false
	case n == 2 || n == 3 || n == 5:
		return true
	case n%2 == 0 || n%3 == 0 || n%5 == 0:
		return false
	}
	return !s.bits.Test(n >> 1)
}

// isqrt returns floor(sqrt(n)).
func isqrt(n uint64) uint64 {
	const maxRoot = 1<<32 - 1
	r := uint64(math.Sqrt(float64(n)))
	if r > maxRoot {
		r = maxRoot
	}
	for r*r > n {
		r--
	}
	for r < maxRoot && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
