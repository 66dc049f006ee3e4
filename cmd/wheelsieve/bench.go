package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	awsddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/time/rate"

	"github.com/hupe1980/wheelsieve"
	"github.com/hupe1980/wheelsieve/codec"
	"github.com/hupe1980/wheelsieve/report"
	"github.com/hupe1980/wheelsieve/report/dynamodb"
)

func benchCommand(ctx context.Context, e *env, args []string) error {
	fs := e.flagSet("bench")
	bound := boundValue(1_000_000)
	fs.Var(&bound, "n", "sieve bound")
	duration := fs.Duration("d", 5*time.Second, "benchmark duration")
	threads := fs.Int("threads", runtime.GOMAXPROCS(0), "worker threads")
	threshold := fs.Uint64("threshold", wheelsieve.DefaultParallelThreshold, "marks per worker before a prime is marked in parallel")
	name := fs.String("name", "wheelsieve", "result name")
	format := fs.String("format", "text", "report format: text or json")
	codecName := fs.String("codec", "go-json", "JSON codec: "+strings.Join(codec.Names(), ", "))
	table := fs.String("ddb-table", "", "also record the result in this DynamoDB table")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := e.parse(fs, args); err != nil {
		return err
	}

	sinks := make([]report.Sink, 0, 2)
	switch *format {
	case "text":
		sinks = append(sinks, report.NewTextSink(e.stdout))
	case "json":
		c, err := codec.Lookup(*codecName)
		if err != nil {
			return err
		}
		sinks = append(sinks, report.NewJSONSink(e.stdout, c))
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if *table != "" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("load AWS config: %w", err)
		}
		sinks = append(sinks, dynamodb.NewSink(awsddb.NewFromConfig(cfg), *table))
	}

	logger := e.logger(*verbose)
	engine := wheelsieve.NewEngine(
		wheelsieve.WithThreads(*threads),
		wheelsieve.WithParallelThreshold(*threshold),
		wheelsieve.WithLogger(logger),
	)
	defer engine.Close()

	res, err := bench(ctx, engine, uint64(bound), *duration, logger)
	if err != nil {
		return err
	}
	res.Name = *name

	if err := report.Multi(sinks...).Write(ctx, res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !res.Valid {
		return fmt.Errorf("bound %d: invalid prime count %d", res.Bound, res.Count)
	}
	return nil
}

// bench creates, runs and destroys fresh sieves until d has elapsed. The
// last pass is counted and validated before it is destroyed.
func bench(ctx context.Context, engine *wheelsieve.Engine, bound uint64, d time.Duration, logger *wheelsieve.Logger) (report.Result, error) {
	res := report.Result{
		Bound:    bound,
		Threads:  engine.Threads(),
		WordBits: wheelsieve.WordBits(),
		Started:  time.Now(),
	}
	progress := rate.NewLimiter(rate.Every(time.Second), 1)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		s, err := engine.New(bound)
		if err != nil {
			return res, err
		}
		s.Run()
		res.Passes++
		res.Elapsed = time.Since(res.Started)

		if res.Elapsed < d {
			if progress.Allow() {
				logger.InfoContext(ctx, "benchmark progress", "passes", res.Passes, "elapsed", res.Elapsed)
			}
			_ = s.Close()
			continue
		}

		count, err := s.Count()
		_ = s.Close()
		if err != nil {
			return res, err
		}
		res.Count = count
		_, err = checkCount(bound, count)
		res.Valid = err == nil
		return res, nil
	}
}
