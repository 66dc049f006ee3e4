package wheelsieve

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with wheelsieve-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// This is the default for engines created without WithLogger.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBound adds a bound field to the logger.
func (l *Logger) WithBound(bound uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("bound", bound),
	}
}

// LogCreate logs the allocation of a sieve.
func (l *Logger) LogCreate(ctx context.Context, bound, bytes uint64, mapped bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sieve allocation failed",
			"bound", bound,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sieve allocated",
			"bound", bound,
			"bytes", bytes,
			"mapped", mapped,
		)
	}
}

// LogRun logs a completed marking phase.
func (l *Logger) LogRun(ctx context.Context, bound uint64, elapsed time.Duration, stats Stats) {
	l.DebugContext(ctx, "sieve run completed",
		"bound", bound,
		"elapsed", elapsed,
		"sieving_primes", stats.Primes,
		"parallel", stats.Parallel,
		"sequential", stats.Sequential,
		"marks", stats.Marks,
	)
}

// LogMark logs the marking of a single sieving prime.
func (l *Logger) LogMark(ctx context.Context, prime uint64, parallel bool, marks uint64) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "prime marked",
		"prime", prime,
		"parallel", parallel,
		"marks", marks,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, bound uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"bound", bound,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"name", name,
			"bound", bound,
		)
	}
}

// LogValidation logs the outcome of checking a count against the known table.
func (l *Logger) LogValidation(ctx context.Context, bound, count uint64, err error) {
	if err != nil {
		l.WarnContext(ctx, "validation failed",
			"bound", bound,
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "validation passed",
			"bound", bound,
			"count", count,
		)
	}
}
