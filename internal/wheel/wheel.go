package wheel

import "iter"

// Gaps holds the spacing between successive integers coprime to 30, in
// half-index units. Entry 0 is the step from 31 to 37 (1 to 7 modulo 30).
var Gaps = [8]uint64{3, 2, 1, 2, 1, 2, 3, 1}

const (
	// First is the first candidate above the implicit primes 2, 3 and 5.
	First = 7
	// FirstHalf is the half-index of First.
	FirstHalf = First >> 1

	// firstStep is the table entry that advances 7 to 11.
	firstStep = 1
)

// HalfCursor walks candidate half-indices (h represents 2h+1).
type HalfCursor struct {
	step int
	pos  uint64
}

// NewHalfCursor returns a cursor positioned on 7 (half-index 3).
func NewHalfCursor() HalfCursor {
	return HalfCursor{step: firstStep, pos: FirstHalf}
}

// Pos returns the current half-index.
func (c *HalfCursor) Pos() uint64 { return c.pos }

// Next advances to the next candidate half-index.
func (c *HalfCursor) Next() {
	c.pos += Gaps[c.step]
	c.step = (c.step + 1) & 7
}

// IntCursor walks candidate integers.
type IntCursor struct {
	step int
	pos  uint64
}

// NewIntCursor returns a cursor positioned on 7.
func NewIntCursor() IntCursor {
	return IntCursor{step: firstStep, pos: First}
}

// Pos returns the current integer.
func (c *IntCursor) Pos() uint64 { return c.pos }

// Next advances to the next integer coprime to 30.
func (c *IntCursor) Next() {
	c.pos += Gaps[c.step] << 1
	c.step = (c.step + 1) & 7
}

// HalfSeq yields candidate half-indices from 3 up to and including limit.
func HalfSeq(limit uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for c := NewHalfCursor(); c.Pos() <= limit; c.Next() {
			if !yield(c.Pos()) {
				return
			}
		}
	}
}

// IntSeq yields candidate integers from 7 up to and including limit.
func IntSeq(limit uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for c := NewIntCursor(); c.Pos() <= limit; c.Next() {
			if !yield(c.Pos()) {
				return
			}
		}
	}
}
