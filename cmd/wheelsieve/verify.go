package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/wheelsieve"
	"github.com/hupe1980/wheelsieve/resource"
)

type verifyResult struct {
	bound    uint64
	count    uint64
	elapsed  time.Duration
	mismatch bool
}

func verifyCommand(ctx context.Context, e *env, args []string) error {
	fs := e.flagSet("verify")
	maxBound := boundValue(100_000_000)
	fs.Var(&maxBound, "max", "largest known bound to check")
	jobs := fs.Int64("jobs", 2, "concurrent sieves")
	threads := fs.Int("threads", 1, "worker threads shared by all jobs")
	memLimit := fs.Int64("mem-limit", 0, "bit-store memory limit in bytes (0: unlimited)")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:  *memLimit,
		MaxBackgroundJobs: *jobs,
	})
	engine := wheelsieve.NewEngine(
		wheelsieve.WithThreads(*threads),
		wheelsieve.WithResourceController(rc),
		wheelsieve.WithLogger(e.logger(*verbose)),
	)
	defer engine.Close()

	var bounds []uint64
	for _, b := range wheelsieve.KnownBounds() {
		if b <= uint64(maxBound) {
			bounds = append(bounds, b)
		}
	}

	results, err := verify(ctx, engine, rc, bounds)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		status := "ok"
		if r.mismatch {
			status = "MISMATCH"
			failed++
		}
		fmt.Fprintf(e.stdout, "%d %d %s %s\n", r.bound, r.count, status, r.elapsed.Round(time.Microsecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d bounds failed validation", failed, len(results))
	}
	return nil
}

// verify sieves every bound, running at most rc's background job limit at once.
// Results keep the order of bounds.
func verify(ctx context.Context, engine *wheelsieve.Engine, rc *resource.Controller, bounds []uint64) ([]verifyResult, error) {
	results := make([]verifyResult, len(bounds))
	g, ctx := errgroup.WithContext(ctx)

	for i, bound := range bounds {
		g.Go(func() error {
			if err := rc.AcquireBackground(ctx); err != nil {
				return err
			}
			defer rc.ReleaseBackground()

			s, err := engine.New(bound)
			if err != nil {
				return fmt.Errorf("bound %d: %w", bound, err)
			}
			defer s.Close()

			start := time.Now()
			s.Run()
			res := verifyResult{bound: bound, elapsed: time.Since(start)}
			count, err := s.Count()
			if err != nil {
				return fmt.Errorf("bound %d: %w", bound, err)
			}
			res.count = count
			if _, err := checkCount(bound, count); err != nil {
				res.mismatch = true
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
