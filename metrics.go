package wheelsieve

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCreate is called after each sieve allocation.
	// bytes is the size of the bit store, err is nil if successful.
	RecordCreate(bound, bytes uint64, duration time.Duration, err error)

	// RecordRun is called after each marking phase.
	RecordRun(bound uint64, duration time.Duration, stats Stats)

	// RecordMark is called after each sieving prime has been marked.
	// It runs on the goroutine calling Run; keep it cheap.
	RecordMark(prime uint64, parallel bool, marks uint64)

	// RecordCount is called after each count.
	RecordCount(bound, count uint64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(uint64, uint64, time.Duration, error) {}
func (NoopMetricsCollector) RecordRun(uint64, time.Duration, Stats)            {}
func (NoopMetricsCollector) RecordMark(uint64, bool, uint64)                   {}
func (NoopMetricsCollector) RecordCount(uint64, uint64, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount     atomic.Int64
	CreateErrors    atomic.Int64
	AllocatedBytes  atomic.Int64
	RunCount        atomic.Int64
	RunTotalNanos   atomic.Int64
	ParallelMarks   atomic.Int64
	SequentialMarks atomic.Int64
	BitWrites       atomic.Int64
	CountCount      atomic.Int64
	CountTotalNanos atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(_, bytes uint64, _ time.Duration, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
		return
	}
	b.AllocatedBytes.Add(int64(bytes))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ uint64, duration time.Duration, _ Stats) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
}

// RecordMark implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMark(_ uint64, parallel bool, marks uint64) {
	if parallel {
		b.ParallelMarks.Add(1)
	} else {
		b.SequentialMarks.Add(1)
	}
	b.BitWrites.Add(int64(marks))
}

// RecordCount implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCount(_, _ uint64, duration time.Duration) {
	b.CountCount.Add(1)
	b.CountTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:     b.CreateCount.Load(),
		CreateErrors:    b.CreateErrors.Load(),
		AllocatedBytes:  b.AllocatedBytes.Load(),
		RunCount:        b.RunCount.Load(),
		RunAvgNanos:     avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		ParallelMarks:   b.ParallelMarks.Load(),
		SequentialMarks: b.SequentialMarks.Load(),
		BitWrites:       b.BitWrites.Load(),
		CountCount:      b.CountCount.Load(),
		CountAvgNanos:   avg(b.CountTotalNanos.Load(), b.CountCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount     int64
	CreateErrors    int64
	AllocatedBytes  int64
	RunCount        int64
	RunAvgNanos     int64
	ParallelMarks   int64
	SequentialMarks int64
	BitWrites       int64
	CountCount      int64
	CountAvgNanos   int64
}
