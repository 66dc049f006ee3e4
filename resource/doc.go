// Package resource enforces process-wide limits on bit-store memory,
// concurrent background sieve jobs and snapshot IO throughput.
package resource
