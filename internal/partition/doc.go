// Package partition splits one prime's strided marking range across workers.
//
// Marking a prime p sets every half-index start, start+p, start+2p, ... below
// end. Splitting that lattice into equal contiguous chunks would let two
// workers write bits of the same word near a chunk boundary, and since words
// are updated with plain read-modify-write, one of the marks could be lost.
//
// Split moves every interior boundary forward one stride at a time until the
// last lattice point before it and the lattice point on it live in different
// words. Both neighbours of a boundary derive it from the same predicate, so
// the resulting ranges are contiguous and every word is written by at most one
// worker. The function is pure and independent of any bit store.
package partition
