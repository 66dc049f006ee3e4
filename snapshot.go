package wheelsieve

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hupe1980/wheelsieve/blobstore"
	"github.com/hupe1980/wheelsieve/internal/bitstore"
	"github.com/hupe1980/wheelsieve/internal/sieve"
	"github.com/hupe1980/wheelsieve/internal/snapshot"
	"github.com/hupe1980/wheelsieve/resource"
)

// Compression selects how snapshot payloads are compressed.
type Compression = snapshot.Compression

const (
	CompressionNone = snapshot.CompressionNone
	CompressionLZ4  = snapshot.CompressionLZ4
	CompressionZSTD = snapshot.CompressionZSTD
)

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	return snapshot.ParseCompression(s)
}

// Snapshot decoding errors.
var (
	ErrInvalidSnapshot     = snapshot.ErrInvalidMagic
	ErrUnsupportedSnapshot = snapshot.ErrUnsupportedVersion
	ErrSnapshotWordWidth   = snapshot.ErrWordWidth
	ErrSnapshotChecksum    = snapshot.ErrChecksum
	ErrSnapshotCorrupt     = snapshot.ErrCorrupt
)

type snapshotOptions struct {
	compression Compression
}

// SnapshotOption configures snapshot writing.
type SnapshotOption func(*snapshotOptions)

// WithCompression selects the payload compression. The default is zstd.
func WithCompression(c Compression) SnapshotOption {
	return func(o *snapshotOptions) {
		o.compression = c
	}
}

// WriteSnapshot writes the marked bit store to w.
func (s *Sieve) WriteSnapshot(w io.Writer, optFns ...SnapshotOption) error {
	if err := s.ready(); err != nil {
		return err
	}

	opts := snapshotOptions{compression: CompressionZSTD}
	for _, fn := range optFns {
		fn(&opts)
	}

	bw := bufio.NewWriterSize(w, 1<<16)
	if err := snapshot.Encode(bw, s.Bound(), s.bits.Words(), opts.compression); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadSnapshot restores a sieve written by WriteSnapshot. The restored sieve
// is ready to count and is charged against the engine's memory limit.
func (e *Engine) ReadSnapshot(r io.Reader) (*Sieve, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	br := bufio.NewReaderSize(r, 1<<16)
	h, err := snapshot.ReadHeader(br)
	if err != nil {
		return nil, err
	}

	size := bitstore.SizeBytes[word](sieve.HalfBits(h.Bound))
	if size > math.MaxInt64 {
		return nil, &AllocationError{Bound: h.Bound, Bytes: size, cause: bitstore.ErrTooLarge}
	}
	if err := e.opts.resources.ReserveMemory(int64(size)); err != nil {
		return nil, err
	}

	words, err := snapshot.DecodePayload[word](br, h)
	if err != nil {
		e.opts.resources.ReleaseMemory(int64(size))
		return nil, err
	}

	s := e.newSieve(h.Bound, bitstore.FromWords(words), size)
	s.ran = true
	return s, nil
}

// Save writes a snapshot to store under name. IO is throttled by the
// engine's resource controller.
func (s *Sieve) Save(ctx context.Context, store blobstore.BlobStore, name string, optFns ...SnapshotOption) error {
	err := s.save(ctx, store, name, optFns...)
	s.engine.opts.logger.LogSnapshot(ctx, "save", name, s.Bound(), err)
	return err
}

func (s *Sieve) save(ctx context.Context, store blobstore.BlobStore, name string, optFns ...SnapshotOption) error {
	if err := s.ready(); err != nil {
		return err
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	rw := resource.NewRateLimitedWriter(ctx, w, s.engine.opts.resources)
	if err := s.WriteSnapshot(rw, optFns...); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Sync(); err != nil {
		_ = w.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// Load restores a sieve saved with Save.
func (e *Engine) Load(ctx context.Context, store blobstore.BlobStore, name string) (*Sieve, error) {
	start := time.Now()
	s, err := e.load(ctx, store, name)

	var bound uint64
	if s != nil {
		bound = s.Bound()
	}
	e.opts.logger.LogSnapshot(ctx, "load", name, bound, err)
	if err == nil {
		e.opts.metricsCollector.RecordCreate(bound, s.SizeBytes(), time.Since(start), nil)
	}
	return s, err
}

func (e *Engine) load(ctx context.Context, store blobstore.BlobStore, name string) (*Sieve, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer rc.Close()

	s, err := e.ReadSnapshot(resource.NewRateLimitedReader(ctx, rc, e.opts.resources))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: %w", name, ErrSnapshotCorrupt, err)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
