package sieve

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/wheelsieve/internal/bitstore"
	"github.com/hupe1980/wheelsieve/internal/pool"
	"github.com/hupe1980/wheelsieve/testutil"
)

var knownCounts = []struct {
	bound uint64
	count uint64
	long  bool
}{
	{10, 4, false},
	{100, 25, false},
	{1_000, 168, false},
	{10_000, 1_229, false},
	{100_000, 9_592, false},
	{1_000_000, 78_498, false},
	{10_000_000, 664_579, false},
	{100_000_000, 5_761_455, true},
	{1_000_000_000, 50_847_534, true},
}

func newSieve[W bitstore.Word](bound uint64, cfg Config) *Sieve[W] {
	return New(bound, bitstore.New[W](HalfBits(bound)), cfg)
}

func testKnownCounts[W bitstore.Word](t *testing.T, p *pool.Pool) {
	for _, tt := range knownCounts {
		if tt.long && testing.Short() {
			continue
		}
		t.Run(fmt.Sprint(tt.bound), func(t *testing.T) {
			s := newSieve[W](tt.bound, Config{Pool: p})
			s.Run()
			assert.Equal(t, tt.count, s.Count())
		})
	}
}

func TestKnownCounts(t *testing.T) {
	p := pool.New(4)
	defer p.Close()

	t.Run("sequential/uint32", func(t *testing.T) { testKnownCounts[uint32](t, nil) })
	t.Run("sequential/uint64", func(t *testing.T) { testKnownCounts[uint64](t, nil) })
	t.Run("parallel/uint32", func(t *testing.T) { testKnownCounts[uint32](t, p) })
	t.Run("parallel/uint64", func(t *testing.T) { testKnownCounts[uint64](t, p) })
}

func TestMatchesReference(t *testing.T) {
	p := pool.New(3)
	defer p.Close()

	for n := uint64(0); n <= 2_000; n++ {
		s := newSieve[uint32](n, Config{Pool: p, Threshold: 1})
		s.Run()

		want := testutil.Primes(n)
		require.Equal(t, uint64(len(want)), s.Count(), "bound %d", n)
		if len(want) == 0 {
			require.Empty(t, slices.Collect(s.Primes()), "bound %d", n)
			continue
		}
		require.Equal(t, want, slices.Collect(s.Primes()), "bound %d", n)
	}
}

func TestRandomBounds(t *testing.T) {
	p := pool.New(5)
	defer p.Close()

	rng := testutil.NewRNG(4711)
	for i := 0; i < 20; i++ {
		n := rng.Bound(10_000, 400_000)
		s := newSieve[uint64](n, Config{Pool: p, Threshold: 10})
		s.Run()
		assert.Equal(t, testutil.PrimeCount(n), s.Count(), "bound %d", n)
	}
}

func TestSmallBounds(t *testing.T) {
	tests := []struct {
		bound uint64
		want  uint64
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 4},
		{48, 15},
		// Odd composite bounds: the bound itself must be marked.
		{49, 15},
		{121, 30},
		{169, 39},
	}
	for _, tt := range tests {
		s := newSieve[uint64](tt.bound, Config{})
		s.Run()
		assert.Equal(t, tt.want, s.Count(), "bound %d", tt.bound)
	}
}

func TestBelow49MarksNothing(t *testing.T) {
	for n := uint64(0); n < 49; n++ {
		s := newSieve[uint32](n, Config{})
		s.Run()
		assert.Zero(t, s.Bits().Count(), "bound %d", n)
		assert.Zero(t, s.Stats().Primes, "bound %d", n)
	}
}

func testParallelEquivalence[W bitstore.Word](t *testing.T) {
	const bound = 2_000_003
	for threads := 1; threads <= 8; threads++ {
		p := pool.New(threads)
		for _, prime := range []uint64{3, 5, 7, 11, 13, 31, 61, 67, 127, 131, 257, 1021} {
			seq := newSieve[W](bound, Config{})
			seq.MarkSequential(prime)

			par := newSieve[W](bound, Config{Pool: p})
			par.MarkParallel(prime)

			require.True(t, seq.Bits().Equal(par.Bits()), "threads=%d p=%d", threads, prime)
		}
		p.Close()
	}
}

func TestParallelEquivalence(t *testing.T) {
	t.Run("uint32", testParallelEquivalence[uint32])
	t.Run("uint64", testParallelEquivalence[uint64])
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	p := pool.New(4)
	defer p.Close()

	once := newSieve[uint64](1_000_000, Config{Pool: p})
	once.Run()

	twice := newSieve[uint64](1_000_000, Config{Pool: p})
	twice.Run()
	first := twice.Stats()
	twice.Run()

	assert.True(t, once.Bits().Equal(twice.Bits()))
	assert.Equal(t, uint64(78_498), twice.Count())
	assert.Equal(t, once.Stats(), twice.Stats())
	assert.Equal(t, first, twice.Stats())
	assert.Equal(t, uint64(165), twice.Stats().Primes)
}

func TestParallelAndSequentialRunsAgree(t *testing.T) {
	p := pool.New(6)
	defer p.Close()

	seq := newSieve[uint32](5_000_000, Config{})
	seq.Run()

	par := newSieve[uint32](5_000_000, Config{Pool: p, Threshold: 1})
	par.Run()

	assert.True(t, seq.Bits().Equal(par.Bits()))
}

func TestStats(t *testing.T) {
	p := pool.New(4)
	defer p.Close()

	var observed []uint64
	s := newSieve[uint64](1_000_000, Config{
		Pool: p,
		OnMark: func(prime uint64, _ bool, _ uint64) {
			observed = append(observed, prime)
		},
	})
	s.Run()

	st := s.Stats()
	// Sieving primes are the primes 7 <= p <= 1000.
	assert.Equal(t, uint64(168-3), st.Primes)
	assert.Equal(t, st.Primes, st.Sequential+st.Parallel)
	assert.Positive(t, st.Parallel)
	assert.Positive(t, st.Sequential)
	assert.Positive(t, st.Marks)
	assert.Len(t, observed, int(st.Primes))
	assert.Equal(t, uint64(7), observed[0])
}

func TestSequentialWithoutPool(t *testing.T) {
	s := newSieve[uint64](1_000_000, Config{})
	s.Run()

	assert.Zero(t, s.Stats().Parallel)
	assert.Equal(t, uint64(78_498), s.Count())
}

func TestClosedPoolFallsBack(t *testing.T) {
	p := pool.New(4)
	p.Close()

	s := newSieve[uint64](1_000_000, Config{Pool: p, Threshold: 1})
	s.Run()

	assert.Zero(t, s.Stats().Parallel)
	assert.Equal(t, uint64(78_498), s.Count())
}

func TestIsPrime(t *testing.T) {
	s := newSieve[uint32](10_000, Config{})
	s.Run()

	ref := testutil.ReferenceSieve(10_000)
	for n := uint64(0); n <= 10_000; n++ {
		require.Equal(t, ref.Test(uint(n)), s.IsPrime(n), "n=%d", n)
	}
}

func TestPrimesEarlyStop(t *testing.T) {
	s := newSieve[uint64](1_000, Config{})
	s.Run()

	var got []uint64
	for p := range s.Primes() {
		got = append(got, p)
		if len(got) == 5 {
			break
		}
	}
	assert.Equal(t, []uint64{2, 3, 5, 7, 11}, got)
}

func TestISqrt(t *testing.T) {
	tests := []struct {
		n, want uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{48, 6},
		{49, 7},
		{1_000_000_000, 31_622},
		{1<<64 - 1, 1<<32 - 1},
		{(1<<32 - 1) * (1<<32 - 1), 1<<32 - 1},
		{(1<<32-1)*(1<<32-1) - 1, 1<<32 - 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isqrt(tt.n), "n=%d", tt.n)
	}
}

func BenchmarkRun(b *testing.B) {
	p := pool.New(0)
	defer p.Close()

	for _, cfg := range []struct {
		name string
		pool *pool.Pool
	}{
		{"sequential", nil},
		{"parallel", p},
	} {
		b.Run(cfg.name, func(b *testing.B) {
			for b.Loop() {
				s := newSieve[uint64](1_000_000, Config{Pool: cfg.pool})
				s.Run()
			}
		})
	}
}
