package wheelsieve

// knownCounts holds π(10^k) for the bounds the benchmark validates against.
var knownCounts = map[uint64]uint64{
	10:             4,
	100:            25,
	1_000:          168,
	10_000:         1_229,
	100_000:        9_592,
	1_000_000:      78_498,
	10_000_000:     664_579,
	100_000_000:    5_761_455,
	1_000_000_000:  50_847_534,
	10_000_000_000: 455_052_511,
}

// KnownCount returns the number of primes up to bound for the powers of ten
// from 10 to 10^10.
func KnownCount(bound uint64) (uint64, bool) {
	n, ok := knownCounts[bound]
	return n, ok
}

// KnownBounds returns the bounds KnownCount answers for, ascending.
func KnownBounds() []uint64 {
	bounds := make([]uint64, 0, len(knownCounts))
	for b := uint64(10); b <= 10_000_000_000; b *= 10 {
		bounds = append(bounds, b)
	}
	return bounds
}
