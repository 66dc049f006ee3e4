package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/wheelsieve"
	"github.com/hupe1980/wheelsieve/blobstore"
	minioblob "github.com/hupe1980/wheelsieve/blobstore/minio"
	s3blob "github.com/hupe1980/wheelsieve/blobstore/s3"
)

// errUsage reports a flag error that the flag package already printed.
var errUsage = errors.New("usage")

type env struct {
	stdout io.Writer
	stderr io.Writer
}

func (e *env) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func (e *env) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		// The flag package has already reported the problem.
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(e.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

func (e *env) logger(verbose bool) *wheelsieve.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return wheelsieve.NewLogger(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
}

// boundValue parses bounds written as integers or as 1e9.
type boundValue uint64

func (b *boundValue) String() string { return strconv.FormatUint(uint64(*b), 10) }

func (b *boundValue) Set(s string) error {
	s = strings.ReplaceAll(s, "_", "")
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		*b = boundValue(n)
		return nil
	}
	if mant, exp, ok := strings.Cut(strings.ToLower(s), "e"); ok {
		m, err1 := strconv.ParseUint(mant, 10, 64)
		x, err2 := strconv.ParseUint(exp, 10, 8)
		if err1 == nil && err2 == nil && x <= 19 {
			n := m
			for range x {
				if n > ^uint64(0)/10 {
					return fmt.Errorf("bound %q overflows", s)
				}
				n *= 10
			}
			*b = boundValue(n)
			return nil
		}
	}
	return fmt.Errorf("invalid bound %q", s)
}

// storeFlags selects and configures a blob store.
type storeFlags struct {
	kind     string
	dir      string
	bucket   string
	prefix   string
	endpoint string
	secure   bool
}

func (f *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.kind, "store", "local", "blob store: local, s3 or minio")
	fs.StringVar(&f.dir, "dir", "snapshots", "directory for the local store")
	fs.StringVar(&f.bucket, "bucket", "", "bucket for the s3 and minio stores")
	fs.StringVar(&f.prefix, "prefix", "", "key prefix for the s3 and minio stores")
	fs.StringVar(&f.endpoint, "endpoint", "", "custom endpoint (s3: URL, minio: host:port)")
	fs.BoolVar(&f.secure, "secure", false, "use TLS for minio")
}

func (f *storeFlags) open(ctx context.Context) (blobstore.BlobStore, error) {
	switch f.kind {
	case "local":
		return blobstore.NewLocalStore(f.dir), nil
	case "s3":
		if f.bucket == "" {
			return nil, errors.New("-bucket is required for the s3 store")
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
			if f.endpoint != "" {
				o.BaseEndpoint = aws.String(f.endpoint)
				o.UsePathStyle = true
			}
		})
		return s3blob.NewStore(client, f.bucket, f.prefix), nil
	case "minio":
		if f.bucket == "" {
			return nil, errors.New("-bucket is required for the minio store")
		}
		endpoint := f.endpoint
		if endpoint == "" {
			endpoint = "localhost:9000"
		}
		store, err := minioblob.New(minioblob.Config{
			Endpoint:  endpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Secure:    f.secure,
		}, f.bucket, f.prefix)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", f.bucket, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q", f.kind)
	}
}
