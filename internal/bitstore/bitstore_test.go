package bitstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, uint(32), Width[uint32]())
	assert.Equal(t, uint(64), Width[uint64]())
}

func TestWordsFor(t *testing.T) {
	tests := []struct {
		halfBits uint64
		want32   uint64
		want64   uint64
	}{
		{0, 1, 1},
		{1, 2, 2},
		{32, 2, 2},
		{33, 3, 2},
		{64, 3, 2},
		{65, 4, 3},
		{500000, 15626, 7814},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want32, WordsFor[uint32](tt.halfBits), "uint32 %d", tt.halfBits)
		assert.Equal(t, tt.want64, WordsFor[uint64](tt.halfBits), "uint64 %d", tt.halfBits)
	}
	assert.Equal(t, uint64(7814*8), SizeBytes[uint64](500000))
}

func testSetTest[W Word](t *testing.T) {
	s := New[W](1000)
	defer s.Close()

	for h := uint64(0); h < 1000; h++ {
		require.False(t, s.Test(h))
	}

	marked := []uint64{0, 1, 31, 32, 63, 64, 65, 127, 128, 999}
	for _, h := range marked {
		s.Set(h)
	}
	for _, h := range marked {
		assert.True(t, s.Test(h), "bit %d", h)
	}
	assert.Equal(t, uint64(len(marked)), s.Count())

	// Idempotent.
	s.Set(64)
	assert.Equal(t, uint64(len(marked)), s.Count())

	assert.False(t, s.Test(2))
	assert.False(t, s.Test(998))
}

func TestSetTest(t *testing.T) {
	t.Run("uint32", testSetTest[uint32])
	t.Run("uint64", testSetTest[uint64])
}

func TestWordOf(t *testing.T) {
	s32 := New[uint32](256)
	s64 := New[uint64](256)

	assert.Equal(t, uint64(0), s32.WordOf(31))
	assert.Equal(t, uint64(1), s32.WordOf(32))
	assert.Equal(t, uint64(0), s64.WordOf(63))
	assert.Equal(t, uint64(1), s64.WordOf(64))
	assert.Equal(t, uint(32), s32.Width())
	assert.Equal(t, uint(64), s64.Width())
}

func TestEqual(t *testing.T) {
	a := New[uint64](200)
	b := New[uint64](200)
	assert.True(t, a.Equal(b))

	a.Set(77)
	assert.False(t, a.Equal(b))
	b.Set(77)
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(New[uint64](2000)))
}

func TestFromWords(t *testing.T) {
	s := FromWords([]uint32{0b101, 0})
	assert.True(t, s.Test(0))
	assert.False(t, s.Test(1))
	assert.True(t, s.Test(2))
	assert.Equal(t, 2, s.Len())
}

func TestNewMapped(t *testing.T) {
	s, err := NewMapped[uint64](1 << 20)
	require.NoError(t, err)
	assert.True(t, s.Mapped())
	assert.Equal(t, int(WordsFor[uint64](1<<20)), s.Len())

	s.Set(12345)
	assert.True(t, s.Test(12345))
	assert.Equal(t, uint64(1), s.Count())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Nil(t, s.Words())
}

func TestSetStride(t *testing.T) {
	s := New[uint32](200)
	s.SetStride(12, 100, 7)

	for h := uint64(0); h < 200; h++ {
		want := h >= 12 && h < 100 && (h-12)%7 == 0
		assert.Equal(t, want, s.Test(h), "bit %d", h)
	}

	s.SetStride(50, 50, 7)
	assert.Equal(t, uint64(13), s.Count())
}
