package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hupe1980/wheelsieve"
	"github.com/hupe1980/wheelsieve/resource"
)

func snapshotCommand(ctx context.Context, e *env, args []string) error {
	fs := e.flagSet("snapshot")
	bound := boundValue(1_000_000)
	fs.Var(&bound, "n", "sieve bound")
	name := fs.String("name", "", "snapshot name (default: <bound>.wsnp)")
	compression := fs.String("compression", "zstd", "payload compression: none, lz4 or zstd")
	threads := fs.Int("threads", runtime.GOMAXPROCS(0), "worker threads")
	ioLimit := fs.Int64("io-limit", 0, "snapshot throughput limit in bytes per second (0: unlimited)")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	var sf storeFlags
	sf.register(fs)
	if err := e.parse(fs, args); err != nil {
		return err
	}

	c, err := wheelsieve.ParseCompression(*compression)
	if err != nil {
		return err
	}
	if *name == "" {
		*name = fmt.Sprintf("%d.wsnp", uint64(bound))
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}

	engine := wheelsieve.NewEngine(
		wheelsieve.WithThreads(*threads),
		wheelsieve.WithResourceController(resource.NewController(resource.Config{IOLimitBytesPerSec: *ioLimit})),
		wheelsieve.WithLogger(e.logger(*verbose)),
	)
	defer engine.Close()

	s, err := engine.New(uint64(bound))
	if err != nil {
		return err
	}
	defer s.Close()
	s.Run()

	if err := s.Save(ctx, store, *name, wheelsieve.WithCompression(c)); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "saved %s (bound %d, %s)\n", *name, s.Bound(), c)
	return nil
}

func restoreCommand(ctx context.Context, e *env, args []string) error {
	fs := e.flagSet("restore")
	name := fs.String("name", "", "snapshot name")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	var sf storeFlags
	sf.register(fs)
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if *name == "" {
		fmt.Fprintln(e.stderr, "restore: -name is required")
		return errUsage
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}

	engine := wheelsieve.NewEngine(wheelsieve.WithLogger(e.logger(*verbose)))
	defer engine.Close()

	start := time.Now()
	s, err := engine.Load(ctx, store, *name)
	if err != nil {
		if errors.Is(err, wheelsieve.ErrSnapshotChecksum) {
			return fmt.Errorf("snapshot %s is damaged: %w", *name, err)
		}
		return err
	}
	defer s.Close()

	return printCount(ctx, e, s, time.Since(start))
}
