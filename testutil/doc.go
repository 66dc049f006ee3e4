// Package testutil provides testing utilities for wheelsieve.
//
// This package is intended for use in tests and benchmarks only. It provides
// a plain reference Sieve of Eratosthenes (one bit per integer, no wheel, no
// parallelism) to check the optimized engine against, and a seeded RNG for
// property tests over random bounds.
//
//	ref := testutil.ReferenceSieve(100_000)
//	ref.Test(99_991) // true
//
//	rng := testutil.NewRNG(4711)
//	n := rng.Bound(1_000, 200_000)
package testutil
