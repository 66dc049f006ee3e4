package wheelsieve

import (
	"github.com/hupe1980/wheelsieve/internal/pool"
	"github.com/hupe1980/wheelsieve/internal/sieve"
	"github.com/hupe1980/wheelsieve/resource"
)

// DefaultParallelThreshold is the number of marks per worker a sieving prime
// must offer before its marking is split across the pool.
const DefaultParallelThreshold = sieve.DefaultThreshold

// Pool is a fixed set of worker goroutines used for parallel marking.
// It can be shared between engines with WithPool.
type Pool = pool.Pool

// NewPool starts a pool with the given number of workers.
// workers <= 0 uses GOMAXPROCS.
func NewPool(workers int) *Pool {
	return pool.New(workers)
}

type options struct {
	threads          int
	threshold        uint64
	logger           *Logger
	metricsCollector MetricsCollector
	resources        *resource.Controller
	mmapThreshold    uint64
	pool             *Pool
}

func defaultOptions() options {
	return options{
		threshold:        DefaultParallelThreshold,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures an Engine.
type Option func(*options)

// WithThreads sets the number of marking workers.
// n <= 0 uses GOMAXPROCS; n == 1 disables parallel marking.
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = n
	}
}

// WithParallelThreshold sets the per-worker mark count above which a prime
// is marked in parallel. Zero restores DefaultParallelThreshold.
func WithParallelThreshold(marksPerWorker uint64) Option {
	return func(o *options) {
		if marksPerWorker == 0 {
			marksPerWorker = DefaultParallelThreshold
		}
		o.threshold = marksPerWorker
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example:
//
//	engine := wheelsieve.NewEngine(
//	    wheelsieve.WithLogger(wheelsieve.NewTextLogger(slog.LevelDebug)),
//	)
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &wheelsieve.BasicMetricsCollector{}
//	engine := wheelsieve.NewEngine(wheelsieve.WithMetrics(metrics))
//	// ... run sieves ...
//	stats := metrics.GetStats()
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController charges every bit store against rc's memory limit
// and throttles snapshot IO with rc's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithMappedStorage places bit stores of at least thresholdBytes in
// anonymous memory mappings instead of the Go heap. Zero disables mapping.
func WithMappedStorage(thresholdBytes uint64) Option {
	return func(o *options) {
		o.mmapThreshold = thresholdBytes
	}
}

// WithPool makes the engine mark on an existing pool. The engine does not
// close a pool it did not create. WithThreads is ignored.
func WithPool(p *Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}
