package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceSieve(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, Primes(30))
	assert.Empty(t, Primes(1))
	assert.Equal(t, []uint64{2}, Primes(2))
}

func TestPrimeCount(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 0},
		{10, 4},
		{100, 25},
		{1000, 168},
		{10000, 1229},
		{100000, 9592},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PrimeCount(tt.n), "n=%d", tt.n)
	}
}

func TestRNGBound(t *testing.T) {
	rng := NewRNG(4711)
	assert.Equal(t, int64(4711), rng.Seed())

	for i := 0; i < 100; i++ {
		n := rng.Bound(10, 20)
		assert.GreaterOrEqual(t, n, uint64(10))
		assert.Less(t, n, uint64(20))
	}
	assert.Less(t, rng.Intn(5), 5)
}
