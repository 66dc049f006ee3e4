package bitstore

import (
	"errors"
	"math"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/wheelsieve/internal/mmap"
)

// ErrTooLarge is returned when a store would not fit in the address space.
var ErrTooLarge = errors.New("bitstore: size exceeds address space")

// Word is the storage unit of a Store.
type Word interface {
	~uint32 | ~uint64
}

// Width returns the width of W in bits.
func Width[W Word]() uint {
	var w W
	return uint(unsafe.Sizeof(w)) * 8
}

// WordsFor returns the number of words needed for halfBits half-indices:
// ceil(halfBits/W) + 1.
func WordsFor[W Word](halfBits uint64) uint64 {
	w := uint64(Width[W]())
	return (halfBits+w-1)/w + 1
}

// SizeBytes returns the memory footprint of a store for halfBits half-indices.
func SizeBytes[W Word](halfBits uint64) uint64 {
	return WordsFor[W](halfBits) * uint64(Width[W]()/8)
}

// Store is a packed bit array addressed by half-index.
type Store[W Word] struct {
	words   []W
	shift   uint
	mask    uint64
	mapping *mmap.Mapping
}

// New allocates a zeroed store on the Go heap.
func New[W Word](halfBits uint64) *Store[W] {
	return FromWords(make([]W, WordsFor[W](halfBits)))
}

// NewMapped allocates a zeroed store in an anonymous memory mapping.
// The store must be closed to release the mapping.
func NewMapped[W Word](halfBits uint64) (*Store[W], error) {
	n := WordsFor[W](halfBits)
	wordBytes := uint64(Width[W]() / 8)
	if n > math.MaxInt/wordBytes {
		return nil, ErrTooLarge
	}

	m, err := mmap.MapAnon(int(n * wordBytes))
	if err != nil {
		return nil, err
	}

	data := m.Bytes()
	s := FromWords(unsafe.Slice((*W)(unsafe.Pointer(&data[0])), n)) //nolint:gosec // mapping is page aligned
	s.mapping = m
	return s, nil
}

// FromWords wraps existing words. The store takes ownership of the slice.
func FromWords[W Word](words []W) *Store[W] {
	width := Width[W]()
	return &Store[W]{
		words: words,
		shift: uint(bits.TrailingZeros(width)),
		mask:  uint64(width - 1),
	}
}

// Test reports whether half-index h is marked composite.
func (s *Store[W]) Test(h uint64) bool {
	return s.words[h>>s.shift]&(W(1)<<(h&s.mask)) != 0
}

// Set marks half-index h composite. Setting a set bit is a no-op.
func (s *Store[W]) Set(h uint64) {
	s.words[h>>s.shift] |= W(1) << (h & s.mask)
}

// SetStride marks start, start+stride, ... below end.
func (s *Store[W]) SetStride(start, end, stride uint64) {
	words, shift, mask := s.words, s.shift, s.mask
	for m := start; m < end; m += stride {
		words[m>>shift] |= W(1) << (m & mask)
	}
}

// WordOf returns the index of the word holding half-index h.
func (s *Store[W]) WordOf(h uint64) uint64 {
	return h >> s.shift
}

// Width returns the word width in bits.
func (s *Store[W]) Width() uint {
	return uint(s.mask + 1)
}

// Words exposes the underlying words. Callers must not retain the slice past Close.
func (s *Store[W]) Words() []W {
	return s.words
}

// Len returns the number of words.
func (s *Store[W]) Len() int {
	return len(s.words)
}

// Count returns the number of set bits.
func (s *Store[W]) Count() uint64 {
	var n int
	for _, w := range s.words {
		n += bits.OnesCount64(uint64(w))
	}
	return uint64(n)
}

// Equal reports whether both stores hold identical words.
func (s *Store[W]) Equal(o *Store[W]) bool {
	if len(s.words) != len(o.words) {
		return false
	}
	for i, w := range s.words {
		if o.words[i] != w {
			return false
		}
	}
	return true
}

// Mapped reports whether the store lives in a memory mapping.
func (s *Store[W]) Mapped() bool {
	return s.mapping != nil
}

// Close releases the store. Heap stores are dropped; mapped stores are unmapped.
// It is idempotent.
func (s *Store[W]) Close() error {
	s.words = nil
	if s.mapping == nil {
		return nil
	}
	err := s.mapping.Close()
	s.mapping = nil
	return err
}
