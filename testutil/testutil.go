package testutil

import (
	"math/rand"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random 64-bit value.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bound returns a pseudo-random bound in [lo, hi).
func (r *RNG) Bound(lo, hi uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + uint64(r.rand.Int63n(int64(hi-lo)))
}

// ReferenceSieve returns a bitset whose bit i is set iff i is a prime <= n.
func ReferenceSieve(n uint64) *bitset.BitSet {
	size := uint(n) + 1
	b := bitset.New(size)
	if n < 2 {
		return b
	}
	b.FlipRange(2, size)
	for i := uint(2); i*i <= uint(n); i++ {
		if !b.Test(i) {
			continue
		}
		for j := i * i; j <= uint(n); j += i {
			b.Clear(j)
		}
	}
	return b
}

// PrimeCount returns the number of primes <= n using ReferenceSieve.
func PrimeCount(n uint64) uint64 {
	return uint64(ReferenceSieve(n).Count())
}

// Primes returns the primes <= n in ascending order using ReferenceSieve.
func Primes(n uint64) []uint64 {
	b := ReferenceSieve(n)
	out := make([]uint64, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, uint64(i))
	}
	return out
}
