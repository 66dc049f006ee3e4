// Package report formats and records benchmark results.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hupe1980/wheelsieve/codec"
)

// Result is the outcome of one timed benchmark.
type Result struct {
	Name     string
	Bound    uint64
	Passes   int
	Elapsed  time.Duration
	Threads  int
	Count    uint64
	Valid    bool
	WordBits uint
	Started  time.Time
}

// Line returns the result as "name;passes;seconds;threads".
func (r Result) Line() string {
	return fmt.Sprintf("%s;%d;%f;%d", r.Name, r.Passes, r.Elapsed.Seconds(), r.Threads)
}

// Sink records results.
type Sink interface {
	Write(ctx context.Context, r Result) error
}

// TextSink writes one report line per result.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink returns a sink writing report lines to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Write(_ context.Context, r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, r.Line())
	return err
}

type jsonResult struct {
	Name     string    `json:"name"`
	Bound    uint64    `json:"bound"`
	Passes   int       `json:"passes"`
	Seconds  float64   `json:"seconds"`
	Threads  int       `json:"threads"`
	Count    uint64    `json:"count"`
	Valid    bool      `json:"valid"`
	WordBits uint      `json:"word_bits"`
	Started  time.Time `json:"started"`
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	mu  sync.Mutex
	enc codec.Encoder
}

// NewJSONSink returns a sink writing JSON lines to w. A nil codec uses
// codec.Default.
func NewJSONSink(w io.Writer, c codec.Codec) *JSONSink {
	if c == nil {
		c = codec.Default
	}
	return &JSONSink{enc: c.NewEncoder(w)}
}

func (s *JSONSink) Write(_ context.Context, r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.enc.Encode(jsonResult{
		Name:     r.Name,
		Bound:    r.Bound,
		Passes:   r.Passes,
		Seconds:  r.Elapsed.Seconds(),
		Threads:  r.Threads,
		Count:    r.Count,
		Valid:    r.Valid,
		WordBits: r.WordBits,
		Started:  r.Started.UTC(),
	})
	if err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

type multi []Sink

// Multi returns a sink that writes to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Write(ctx context.Context, r Result) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
