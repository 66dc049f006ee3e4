// Package bitstore provides the packed composite flags of the sieve.
//
// Bit h of the store represents the odd integer 2h+1 (half-index addressing).
// A set bit means "proven composite". Bits are only ever set, never cleared.
//
// The store is generic over its word type so the word width (32 or 64 bits) is
// a compile-time choice. Words are plain integers: the store performs no
// atomic operations. Concurrent writers must own disjoint words, which the
// partition package guarantees for parallel marking.
package bitstore
