package partition

// Range is a half-open interval [Start, End) of half-indices.
// Start lies on the marking lattice; End is the first lattice point (or the
// range end) that belongs to the next worker.
type Range struct {
	Start uint64
	End   uint64
}

// Empty reports whether the range holds no half-index.
func (r Range) Empty() bool {
	return r.Start >= r.End
}

// Marks returns the number of lattice points start+k*stride inside r.
func (r Range) Marks(stride uint64) uint64 {
	if r.Empty() {
		return 0
	}
	return (r.End - r.Start + stride - 1) / stride
}

// Work returns the number of marks for the lattice start, start+stride, ... below end.
func Work(start, end, stride uint64) uint64 {
	return Range{Start: start, End: end}.Marks(stride)
}

// Split partitions the lattice start+k*stride in [start, end) into threads
// contiguous ranges whose lattice points never share a word of wordWidth bits
// across ranges. Ranges may be empty when the work is too small to go round.
//
// stride must be positive and wordWidth a power of two. start must be at least
// stride so that the point before an interior boundary is addressable; the
// sieve always satisfies this because start = p²/2 >= p.
func Split(start, end, stride uint64, wordWidth uint, threads int) []Range {
	if threads <= 1 || start >= end {
		return []Range{{Start: start, End: end}}
	}

	shift := log2(wordWidth)
	chunk := (end - start) / stride / uint64(threads)

	bounds := make([]uint64, threads+1)
	bounds[0] = start
	bounds[threads] = end
	for i := 1; i < threads; i++ {
		b := start + stride*chunk*uint64(i)
		for b < end && (b-stride)>>shift == b>>shift {
			b += stride
		}
		b = min(b, end)
		bounds[i] = max(b, bounds[i-1])
	}

	ranges := make([]Range, threads)
	for i := range ranges {
		ranges[i] = Range{Start: bounds[i], End: bounds[i+1]}
	}
	return ranges
}

func log2(w uint) uint {
	var s uint
	for w > 1 {
		w >>= 1
		s++
	}
	return s
}
