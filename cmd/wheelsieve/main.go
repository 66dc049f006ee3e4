// Package main implements the wheelsieve CLI.
//
// Usage:
//
//	wheelsieve bench -n 1000000 -d 5s      # timed benchmark, one report line
//	wheelsieve count -n 100000000          # count and validate once
//	wheelsieve verify -max 1000000000      # check every known bound
//	wheelsieve snapshot -n 1e8 -name x     # sieve and save a snapshot
//	wheelsieve restore -name x             # load a snapshot and count
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	env := &env{stdout: stdout, stderr: stderr}
	command := args[0]

	var err error
	switch command {
	case "bench":
		err = benchCommand(ctx, env, args[1:])
	case "count":
		err = countCommand(ctx, env, args[1:])
	case "verify":
		err = verifyCommand(ctx, env, args[1:])
	case "snapshot":
		err = snapshotCommand(ctx, env, args[1:])
	case "restore":
		err = restoreCommand(ctx, env, args[1:])
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "wheelsieve version %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 2
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `wheelsieve - parallel wheel-30 prime sieve

USAGE:
    wheelsieve <command> [arguments]

COMMANDS:
    bench      Run fresh sieves for a fixed duration and report passes
    count      Count the primes up to a bound and validate the result
    verify     Check every bound with a known prime count
    snapshot   Sieve a bound and save the bit store to a blob store
    restore    Load a snapshot and count its primes
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Five-second benchmark on all cores
    wheelsieve bench -n 1000000 -d 5s

    # JSON report, also recorded in DynamoDB
    wheelsieve bench -format json -ddb-table sieve-results

    # Verify up to 10^9 with two concurrent jobs
    wheelsieve verify -max 1000000000 -jobs 2

    # Save to MinIO, then restore
    wheelsieve snapshot -n 100000000 -store minio -bucket sieves -name 1e8.wsnp
    wheelsieve restore -store minio -bucket sieves -name 1e8.wsnp

Run 'wheelsieve <command> -h' for the flags of a command.
`)
}
