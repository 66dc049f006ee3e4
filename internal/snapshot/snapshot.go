package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/wheelsieve/internal/bitstore"
	"github.com/hupe1980/wheelsieve/internal/hash"
)

const (
	// Version is the current format version.
	Version = 1
	// HeaderSize is the encoded size of Header.
	HeaderSize = 40

	// reservedOffset is where the zero padding of the header starts.
	reservedOffset = 28

	// chunkWords is the number of words encoded per write.
	chunkWords = 1 << 14
)

var magic = [4]byte{'W', 'S', 'N', 'P'}

var (
	ErrInvalidMagic       = errors.New("snapshot: invalid magic")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrWordWidth          = errors.New("snapshot: word width mismatch")
	ErrChecksum           = errors.New("snapshot: checksum mismatch")
	ErrCorrupt            = errors.New("snapshot: corrupt header")
)

// Compression selects the payload codec.
type Compression uint8

const (
	// CompressionNone stores the words as is.
	CompressionNone Compression = 0
	// CompressionLZ4 wraps the payload in an LZ4 frame (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD wraps the payload in a zstd stream (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown compression %q", s)
	}
}

// Header describes an encoded snapshot.
type Header struct {
	WordBits    uint8
	Compression Compression
	Bound       uint64
	Words       uint64
	Checksum    uint32
}

func (h Header) marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint16(buf[4:], Version)
	buf[6] = h.WordBits
	buf[7] = byte(h.Compression)
	binary.LittleEndian.PutUint64(buf[8:], h.Bound)
	binary.LittleEndian.PutUint64(buf[16:], h.Words)
	binary.LittleEndian.PutUint32(buf[24:], h.Checksum)
	return buf
}

// ReadHeader reads and validates the fixed-size header.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, fmt.Errorf("snapshot: read header: %w", err)
	}
	if !bytes.Equal(buf[0:4], magic[:]) {
		return Header{}, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint16(buf[4:]); v != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	if !isZero(buf[reservedOffset:]) {
		return Header{}, fmt.Errorf("%w: reserved bytes are not zero", ErrCorrupt)
	}

	h := Header{
		WordBits:    buf[6],
		Compression: Compression(buf[7]),
		Bound:       binary.LittleEndian.Uint64(buf[8:]),
		Words:       binary.LittleEndian.Uint64(buf[16:]),
		Checksum:    binary.LittleEndian.Uint32(buf[24:]),
	}
	if h.WordBits != 32 && h.WordBits != 64 {
		return Header{}, fmt.Errorf("%w: word width %d", ErrCorrupt, h.WordBits)
	}
	if h.Compression > CompressionZSTD {
		return Header{}, fmt.Errorf("%w: %s", ErrCorrupt, h.Compression)
	}
	return h, nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Encode writes a snapshot of words for bound to w.
func Encode[W bitstore.Word](w io.Writer, bound uint64, words []W, c Compression) error {
	buf := make([]byte, 0, chunkWords*8)

	var crc uint32
	for off := 0; off < len(words); off += chunkWords {
		buf = appendWords(buf[:0], words[off:min(off+chunkWords, len(words))])
		crc = hash.UpdateCRC32C(crc, buf)
	}

	h := Header{
		WordBits:    uint8(bitstore.Width[W]()),
		Compression: c,
		Bound:       bound,
		Words:       uint64(len(words)),
		Checksum:    crc,
	}
	if _, err := w.Write(h.marshal()); err != nil {
		return err
	}

	pw, err := newPayloadWriter(w, c)
	if err != nil {
		return err
	}
	for off := 0; off < len(words); off += chunkWords {
		buf = appendWords(buf[:0], words[off:min(off+chunkWords, len(words))])
		if _, err := pw.Write(buf); err != nil {
			_ = pw.Close()
			return err
		}
	}
	return pw.Close()
}

// Decode reads a snapshot from r. The snapshot's word width must match W.
func Decode[W bitstore.Word](r io.Reader) (Header, []W, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Header{}, nil, err
	}
	words, err := DecodePayload[W](r, h)
	if err != nil {
		return Header{}, nil, err
	}
	return h, words, nil
}

// DecodePayload reads the words following a header returned by ReadHeader.
func DecodePayload[W bitstore.Word](r io.Reader, h Header) ([]W, error) {
	if uint(h.WordBits) != bitstore.Width[W]() {
		return nil, fmt.Errorf("%w: snapshot has %d-bit words, want %d", ErrWordWidth, h.WordBits, bitstore.Width[W]())
	}
	if want := bitstore.WordsFor[W](h.Bound / 2); h.Words != want {
		return nil, fmt.Errorf("%w: %d words for bound %d, want %d", ErrCorrupt, h.Words, h.Bound, want)
	}

	pr, err := newPayloadReader(r, h.Compression)
	if err != nil {
		return nil, err
	}
	defer pr.Close()

	// Grow with the payload so a truncated stream never forces the full
	// allocation up front.
	words := make([]W, 0, min(h.Words, chunkWords))
	wordBytes := uint64(h.WordBits / 8)
	buf := make([]byte, chunkWords*wordBytes)

	var crc uint32
	for remaining := h.Words; remaining > 0; {
		n := min(remaining, chunkWords)
		b := buf[:n*wordBytes]
		if _, err := io.ReadFull(pr, b); err != nil {
			return nil, fmt.Errorf("snapshot: read payload: %w", err)
		}
		crc = hash.UpdateCRC32C(crc, b)

		off := len(words)
		words = append(words, make([]W, n)...)
		decodeWords(words[off:], b)
		remaining -= n
	}

	if crc != h.Checksum {
		return nil, ErrChecksum
	}
	return words, nil
}

func appendWords[W bitstore.Word](dst []byte, words []W) []byte {
	if bitstore.Width[W]() == 32 {
		for _, w := range words {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(w))
		}
		return dst
	}
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(w))
	}
	return dst
}

func decodeWords[W bitstore.Word](dst []W, src []byte) {
	if bitstore.Width[W]() == 32 {
		for i := range dst {
			dst[i] = W(binary.LittleEndian.Uint32(src[i*4:]))
		}
		return
	}
	for i := range dst {
		dst[i] = W(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newPayloadWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nil, fmt.Errorf("snapshot: unknown compression %s", c)
	}
}

func newPayloadReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("snapshot: unknown compression %s", c)
	}
}
