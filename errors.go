package wheelsieve

import (
	"errors"
	"fmt"

	"github.com/hupe1980/wheelsieve/resource"
)

var (
	// ErrNotRun is returned when a sieve is queried before Run.
	ErrNotRun = errors.New("sieve has not been run")

	// ErrClosed is returned when a closed sieve or engine is used.
	ErrClosed = errors.New("sieve is closed")

	// ErrEngineClosed is returned when a closed engine creates a sieve.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrOutOfRange is returned by IsPrime for numbers above the bound.
	ErrOutOfRange = errors.New("number exceeds sieve bound")

	// ErrUnknownBound is returned by Validate when no reference count exists.
	ErrUnknownBound = errors.New("no known prime count for bound")

	// ErrMemoryLimitExceeded is returned when a sieve's bit store does not fit
	// the engine's memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrCountMismatch indicates a prime count that disagrees with the known table.
type ErrCountMismatch struct {
	Bound    uint64
	Expected uint64
	Actual   uint64
}

func (e *ErrCountMismatch) Error() string {
	return fmt.Sprintf("prime count mismatch for bound %d: expected %d, got %d", e.Bound, e.Expected, e.Actual)
}

// AllocationError indicates that the bit store for a sieve could not be
// allocated.
//
// The original underlying error can be accessed via errors.Unwrap.
type AllocationError struct {
	Bound uint64
	Bytes uint64
	cause error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate %d bytes for bound %d: %v", e.Bytes, e.Bound, e.cause)
}

func (e *AllocationError) Unwrap() error { return e.cause }
