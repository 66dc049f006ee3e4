package wheel

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapsSpanOneTurn(t *testing.T) {
	var sum uint64
	for _, g := range Gaps {
		sum += g
	}
	// One turn of the wheel is 30 integers, i.e. 15 half-index units.
	assert.Equal(t, uint64(15), sum)
}

func TestHalfCursor(t *testing.T) {
	c := NewHalfCursor()
	want := []uint64{3, 5, 6, 8, 9, 11, 14, 15, 18, 20, 21}

	got := make([]uint64, 0, len(want))
	for range want {
		got = append(got, c.Pos())
		c.Next()
	}
	assert.Equal(t, want, got)
}

func TestIntCursor(t *testing.T) {
	c := NewIntCursor()
	want := []uint64{7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 49, 53, 59, 61}

	got := make([]uint64, 0, len(want))
	for range want {
		got = append(got, c.Pos())
		c.Next()
	}
	assert.Equal(t, want, got)
}

func TestCursorsAgree(t *testing.T) {
	h := NewHalfCursor()
	n := NewIntCursor()
	for i := 0; i < 1000; i++ {
		require.Equal(t, 2*h.Pos()+1, n.Pos(), "step %d", i)
		h.Next()
		n.Next()
	}
}

func TestIntSeqCoprimeTo30(t *testing.T) {
	const limit = 3000

	got := slices.Collect(IntSeq(limit))

	var want []uint64
	for n := uint64(7); n <= limit; n++ {
		if n%2 != 0 && n%3 != 0 && n%5 != 0 {
			want = append(want, n)
		}
	}
	assert.Equal(t, want, got)
}

func TestSeqLimits(t *testing.T) {
	assert.Empty(t, slices.Collect(IntSeq(6)))
	assert.Equal(t, []uint64{7}, slices.Collect(IntSeq(7)))
	assert.Equal(t, []uint64{7, 11}, slices.Collect(IntSeq(12)))

	assert.Empty(t, slices.Collect(HalfSeq(2)))
	assert.Equal(t, []uint64{3, 5}, slices.Collect(HalfSeq(5)))
}

func TestSeqEarlyStop(t *testing.T) {
	var got []uint64
	for h := range HalfSeq(1 << 20) {
		got = append(got, h)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []uint64{3, 5, 6}, got)
}
