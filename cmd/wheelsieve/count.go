package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hupe1980/wheelsieve"
)

func countCommand(ctx context.Context, e *env, args []string) error {
	fs := e.flagSet("count")
	bound := boundValue(1_000_000)
	fs.Var(&bound, "n", "sieve bound")
	threads := fs.Int("threads", runtime.GOMAXPROCS(0), "worker threads")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	engine := wheelsieve.NewEngine(
		wheelsieve.WithThreads(*threads),
		wheelsieve.WithLogger(e.logger(*verbose)),
	)
	defer engine.Close()

	s, err := engine.New(uint64(bound))
	if err != nil {
		return err
	}
	defer s.Close()

	start := time.Now()
	s.Run()
	elapsed := time.Since(start)

	return printCount(ctx, e, s, elapsed)
}

// printCount writes "<bound> <count> <status> <elapsed>" and returns the
// validation error for a mismatching count.
func printCount(_ context.Context, e *env, s *wheelsieve.Sieve, elapsed time.Duration) error {
	count, err := s.Count()
	if err != nil {
		return err
	}

	status, err := checkCount(s.Bound(), count)
	fmt.Fprintf(e.stdout, "%d %d %s %s\n", s.Bound(), count, status, elapsed.Round(time.Microsecond))
	return err
}

// checkCount compares count with the known table. Bounds without a known
// count are reported as unverified and pass.
func checkCount(bound, count uint64) (string, error) {
	want, ok := wheelsieve.KnownCount(bound)
	switch {
	case !ok:
		return "unverified", nil
	case want != count:
		return "MISMATCH", &wheelsieve.ErrCountMismatch{Bound: bound, Expected: want, Actual: count}
	default:
		return "ok", nil
	}
}
