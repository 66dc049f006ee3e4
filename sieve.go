package wheelsieve

import (
	"context"
	"iter"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/wheelsieve/internal/bitstore"
	"github.com/hupe1980/wheelsieve/internal/sieve"
)

// Stats summarizes the marking phase of a sieve.
type Stats struct {
	// Primes is the number of sieving primes whose multiples were marked.
	Primes uint64
	// Sequential is the number of primes marked by a single loop.
	Sequential uint64
	// Parallel is the number of primes marked across the worker pool.
	Parallel uint64
	// Marks is the number of bit writes.
	Marks uint64
}

// Sieve holds the odd-composite bitmap for every integer in [0, Bound()].
//
// A Sieve is not safe for concurrent use. After Run returns, Count, IsPrime
// and Primes may be called from multiple goroutines.
type Sieve struct {
	engine   *Engine
	ownsEng  bool
	core     *sieve.Sieve[word]
	bits     *bitstore.Store[word]
	reserved int64
	ran      bool
	closed   bool
}

// New creates a sieve for bound. Without options it uses the Default engine;
// otherwise it creates a private engine that is closed with the sieve.
func New(bound uint64, optFns ...Option) (*Sieve, error) {
	if len(optFns) == 0 {
		return Default().New(bound)
	}

	e := NewEngine(optFns...)
	s, err := e.New(bound)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	s.ownsEng = true
	return s, nil
}

// Bound returns the inclusive upper limit.
func (s *Sieve) Bound() uint64 {
	return s.core.Bound()
}

// Mapped reports whether the bit store lives in a memory mapping.
func (s *Sieve) Mapped() bool {
	return s.bits.Mapped()
}

// SizeBytes returns the size of the bit store.
func (s *Sieve) SizeBytes() uint64 {
	return uint64(s.reserved)
}

// Run marks every odd composite up to the bound. Running a sieve twice is
// harmless. Run on a closed sieve does nothing.
func (s *Sieve) Run() {
	if s.closed {
		return
	}

	start := time.Now()
	s.core.Run()
	s.ran = true

	elapsed := time.Since(start)
	stats := s.Stats()
	s.engine.opts.metricsCollector.RecordRun(s.Bound(), elapsed, stats)
	s.engine.opts.logger.LogRun(context.Background(), s.Bound(), elapsed, stats)
}

// Stats returns the marking statistics of the last Run.
func (s *Sieve) Stats() Stats {
	st := s.core.Stats()
	return Stats{
		Primes:     st.Primes,
		Sequential: st.Sequential,
		Parallel:   st.Parallel,
		Marks:      st.Marks,
	}
}

func (s *Sieve) ready() error {
	switch {
	case s.closed:
		return ErrClosed
	case !s.ran:
		return ErrNotRun
	}
	return nil
}

// Count returns the number of primes up to and including the bound.
func (s *Sieve) Count() (uint64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	start := time.Now()
	n := s.core.Count()
	s.engine.opts.metricsCollector.RecordCount(s.Bound(), n, time.Since(start))
	return n, nil
}

// IsPrime reports whether n is prime. n must not exceed the bound.
func (s *Sieve) IsPrime(n uint64) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	if n > s.Bound() {
		return false, ErrOutOfRange
	}
	return s.core.IsPrime(n), nil
}

// Primes yields the primes up to the bound in ascending order. It yields
// nothing before Run or after Close.
func (s *Sieve) Primes() iter.Seq[uint64] {
	if s.ready() != nil {
		return func(func(uint64) bool) {}
	}
	return s.core.Primes()
}

// PrimeSet returns the primes up to the bound as a compressed bitmap.
func (s *Sieve) PrimeSet() (*roaring64.Bitmap, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	const batch = 4096
	bm := roaring64.New()
	buf := make([]uint64, 0, batch)
	for p := range s.core.Primes() {
		buf = append(buf, p)
		if len(buf) == batch {
			bm.AddMany(buf)
			buf = buf[:0]
		}
	}
	bm.AddMany(buf)
	bm.RunOptimize()
	return bm, nil
}

// Validate compares the count against the table of known prime counts.
func (s *Sieve) Validate() error {
	n, err := s.Count()
	if err != nil {
		return err
	}

	expected, ok := KnownCount(s.Bound())
	switch {
	case !ok:
		err = ErrUnknownBound
	case expected != n:
		err = &ErrCountMismatch{Bound: s.Bound(), Expected: expected, Actual: n}
	}
	s.engine.opts.logger.LogValidation(context.Background(), s.Bound(), n, err)
	return err
}

// Close releases the bit store. Closing twice is a no-op.
func (s *Sieve) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.bits.Close()
	s.engine.opts.resources.ReleaseMemory(s.reserved)
	if s.ownsEng {
		if cerr := s.engine.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
