// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zcl/lib/config"
	"github.com/bureau-foundation/zcl/lib/loader"
	"github.com/bureau-foundation/zcl/lib/mmapfile"
	"github.com/bureau-foundation/zcl/lib/prefetch"
	"github.com/bureau-foundation/zcl/lib/shardformat"
)

// benchResult is one pass over every sample.
type benchResult struct {
	name     string
	samples  int64
	bytes    uint64
	elapsed  time.Duration
	checksum uint64
}

func (r benchResult) print(w io.Writer) {
	rate := "n/a"
	if seconds := r.elapsed.Seconds(); seconds > 0 {
		rate = humanize.IBytes(uint64(float64(r.bytes)/seconds)) + "/s"
	}
	fmt.Fprintf(w, "%-10s %12s samples %10s in %-12s %s\n",
		r.name, humanize.Comma(r.samples), humanize.IBytes(r.bytes), r.elapsed.Round(time.Microsecond), rate)
}

func runBench(ctx context.Context, env *environment, args []string) error {
	var (
		configPath  string
		ahead       int
		mode        string
		queueDepth  int
		metricsAddr string
	)
	flagSet := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "config file (default: $ZCL_CONFIG if set)")
	flagSet.IntVar(&ahead, "ahead", -1, "shards to prefetch ahead of the reader (default from config)")
	flagSet.StringVar(&mode, "mode", "", "prefetch mode: auto, none, readahead (default from config)")
	flagSet.IntVar(&queueDepth, "queue-depth", 0, "concurrent prefetch I/O (default from config)")
	flagSet.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while benchmarking")
	if err := parseFlags(env, flagSet, "zcl bench [flags] [shard...]", args); err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadBenchConfig(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("ahead") {
		cfg.Prefetch.Ahead = ahead
	}
	if mode != "" {
		cfg.Prefetch.Mode = mode
	}
	if queueDepth != 0 {
		cfg.Prefetch.QueueDepth = queueDepth
	}
	if flagSet.NArg() > 0 {
		cfg.Shards = flagSet.Args()
		cfg.ShardDir = ""
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := newLogger(env.stderr, level, cfg.Log.Format)

	paths, err := cfg.ShardPaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no shards given on the command line or in the config")
	}
	prefetchMode, err := prefetch.ParseMode(cfg.Prefetch.Mode)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := loader.NewMetrics(registry)
	if metricsAddr != "" {
		shutdown, err := serveMetrics(metricsAddr, registry)
		if err != nil {
			return err
		}
		defer shutdown()
		logger.Info("serving metrics", "address", metricsAddr)
	}

	results := make([]benchResult, 0, 3)
	for _, pass := range []struct {
		name string
		run  func() (benchResult, error)
	}{
		{"readat", func() (benchResult, error) { return benchReadAt(ctx, paths) }},
		{"mmap", func() (benchResult, error) { return benchMmap(ctx, paths) }},
		{"loader", func() (benchResult, error) {
			return benchLoader(ctx, paths, cfg.Prefetch.Ahead,
				loader.WithPrefetchMode(prefetchMode),
				loader.WithQueueDepth(cfg.Prefetch.QueueDepth),
				loader.WithLogger(logger),
				loader.WithMetrics(metrics),
			)
		}},
	} {
		result, err := pass.run()
		if err != nil {
			return fmt.Errorf("%s pass: %w", pass.name, err)
		}
		result.name = pass.name
		logger.Debug("pass complete", "pass", pass.name, "elapsed", result.elapsed, "checksum", result.checksum)
		results = append(results, result)
	}

	for _, result := range results {
		result.print(env.stdout)
	}
	if results[0].checksum != results[2].checksum || results[1].checksum != results[2].checksum {
		return fmt.Errorf("checksum mismatch between passes: readat %x, mmap %x, loader %x",
			results[0].checksum, results[1].checksum, results[2].checksum)
	}
	return nil
}

func loadBenchConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvVar) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// serveMetrics starts a Prometheus endpoint and returns a function that
// stops it.
func serveMetrics(address string, registry *prometheus.Registry) (func(), error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", address, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go server.Serve(listener)
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}, nil
}

// sampleChecksum folds a sample into a running checksum. It touches
// the first and last byte so every pass must actually load the data.
func sampleChecksum(sum uint64, sample []byte) uint64 {
	sum = sum*31 + uint64(len(sample))
	if len(sample) > 0 {
		sum = sum*31 + uint64(sample[0])
		sum = sum*31 + uint64(sample[len(sample)-1])
	}
	return sum
}

// sampleStart returns the file offset of entry's first byte. It fails
// with mmapfile.ErrOutOfBounds when the sample would overflow the
// offset arithmetic or end past fileSize.
func sampleStart(dataOffset uint64, entry shardformat.SampleMetadata, fileSize uint64) (uint64, error) {
	start, carry := bits.Add64(dataOffset, entry.Offset, 0)
	if carry != 0 || start > math.MaxInt64 {
		return 0, fmt.Errorf("%w: data offset %d + sample offset %d overflows",
			mmapfile.ErrOutOfBounds, dataOffset, entry.Offset)
	}
	end, carry := bits.Add64(start, entry.Size, 0)
	if carry != 0 || end > fileSize {
		return 0, fmt.Errorf("%w: sample [%d, +%d) ends past file size %d",
			mmapfile.ErrOutOfBounds, start, entry.Size, fileSize)
	}
	return start, nil
}

// benchReadAt reads every sample with buffered ReadAt calls on an
// os.File, parsing the header and metadata through io.Readers.
func benchReadAt(ctx context.Context, paths []string) (benchResult, error) {
	var result benchResult
	var buffer []byte
	start := time.Now()
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		err := func() error {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			info, err := file.Stat()
			if err != nil {
				return err
			}
			header, err := shardformat.ReadHeader(file)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := header.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			span := int64(header.DataOffset - header.MetadataOffset)
			metadata, err := shardformat.ReadMetadata(io.NewSectionReader(file, int64(header.MetadataOffset), span))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			for _, entry := range metadata.Samples {
				offset, err := sampleStart(header.DataOffset, entry, uint64(info.Size()))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if uint64(cap(buffer)) < entry.Size {
					buffer = make([]byte, entry.Size)
				}
				sample := buffer[:entry.Size]
				if _, err := file.ReadAt(sample, int64(offset)); err != nil {
					return fmt.Errorf("%s: reading sample at %d: %w", path, entry.Offset, err)
				}
				result.samples++
				result.bytes += entry.Size
				result.checksum = sampleChecksum(result.checksum, sample)
			}
			return nil
		}()
		if err != nil {
			return result, err
		}
	}
	result.elapsed = time.Since(start)
	return result, nil
}

// benchMmap maps every shard with a Pool and walks the samples through
// the raw mapped bytes, without the shard reader's index.
func benchMmap(ctx context.Context, paths []string) (benchResult, error) {
	var result benchResult
	var pool mmapfile.Pool
	defer pool.Close()

	start := time.Now()
	for _, path := range paths {
		if _, err := pool.Add(path); err != nil {
			return result, err
		}
	}
	for i := range pool.Len() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		file := pool.Get(i)
		if err := file.Advise(mmapfile.AdviceSequential); err != nil {
			return result, err
		}
		err := mmapfile.Guard(func() error {
			header, err := shardformat.ParseHeader(file.Bytes())
			if err != nil {
				return err
			}
			if err := header.Validate(); err != nil {
				return err
			}
			block, err := file.Range(header.MetadataOffset, header.DataOffset-header.MetadataOffset)
			if err != nil {
				return err
			}
			metadata, err := shardformat.ParseMetadata(block)
			if err != nil {
				return err
			}
			for _, entry := range metadata.Samples {
				offset, err := sampleStart(header.DataOffset, entry, uint64(file.Len()))
				if err != nil {
					return err
				}
				sample, err := file.Range(offset, entry.Size)
				if err != nil {
					return err
				}
				result.samples++
				result.bytes += entry.Size
				result.checksum = sampleChecksum(result.checksum, sample)
			}
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("%s: %w", file.Path(), err)
		}
	}
	result.elapsed = time.Since(start)
	return result, nil
}

// benchLoader opens a Loader and reads every sample in global order,
// keeping ahead shards submitted for prefetch beyond the one being read.
func benchLoader(ctx context.Context, paths []string, ahead int, options ...loader.Option) (benchResult, error) {
	var result benchResult
	start := time.Now()
	shards, err := loader.Open(paths, options...)
	if err != nil {
		return result, err
	}
	defer shards.Close()

	currentShard := -1
	for i := range shards.TotalSamples() {
		location, err := shards.Locate(i)
		if err != nil {
			return result, err
		}
		if location.Shard != currentShard {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			currentShard = location.Shard
			if want := currentShard + 1 + ahead; want > shards.PrefetchCursor() {
				if err := shards.PrefetchNext(want - shards.PrefetchCursor()); err != nil {
					return result, err
				}
			}
		}
		sample, err := shards.Sample(i)
		if err != nil {
			return result, err
		}
		result.samples++
		result.bytes += uint64(len(sample))
		result.checksum = sampleChecksum(result.checksum, sample)
	}
	if err := shards.WaitPrefetch(); err != nil {
		return result, err
	}
	result.elapsed = time.Since(start)
	return result, nil
}
