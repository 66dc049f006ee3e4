// Package sieve implements the wheel-accelerated Sieve of Eratosthenes.
//
// A Sieve owns a bit store for one bound. Run walks the mod-30 candidates up
// to sqrt(N) and, for every candidate still unmarked, marks the odd multiples
// of that prime from p² upward. Marking one prime is either a single strided
// loop or, when the workload is large enough, a fork/join over a worker pool
// with word-disjoint ranges computed by the partition package.
//
// Count and Primes walk the finished store with an integer wheel cursor.
// Nothing in this package synchronizes access: Run, Count and Primes must be
// called from one goroutine at a time.
package sieve
