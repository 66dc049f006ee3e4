// Package wheelsieve counts primes with a bit-packed Sieve of Eratosthenes
// over a mod-30 wheel.
//
// Only odd numbers are stored, one bit each, and the sieve walks only the
// eight residues coprime to 30. Marking the multiples of a large prime is
// split across a fixed worker pool along word boundaries, so workers never
// write the same word and need no atomics.
//
// # Quick Start
//
//	sv, err := wheelsieve.New(1_000_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sv.Close()
//
//	sv.Run()
//	n, _ := sv.Count() // 78498
//
// # Engines
//
// An Engine owns the worker pool and the limits shared by its sieves:
//
//	engine := wheelsieve.NewEngine(
//	    wheelsieve.WithThreads(8),
//	    wheelsieve.WithLogger(wheelsieve.NewTextLogger(slog.LevelInfo)),
//	    wheelsieve.WithResourceController(resource.NewController(resource.Config{
//	        MemoryLimitBytes: 1 << 30,
//	    })),
//	)
//	defer engine.Close()
//
//	sv, err := engine.New(1_000_000_000)
//
// # Snapshots
//
// A finished sieve can be saved to any blobstore.BlobStore and loaded later
// without re-running it:
//
//	err := sv.Save(ctx, blobstore.NewLocalStore("./snapshots"), "1e9.wsnp")
//	restored, err := engine.Load(ctx, store, "1e9.wsnp")
//
// # Word Width
//
// The bit store uses 64-bit words. Build with -tags wheelsieve32 to use
// 32-bit words; snapshots record the width and are only readable by a build
// with the same width.
package wheelsieve
