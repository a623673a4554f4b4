// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zcl/lib/shardtest"
)

func runGenerate(ctx context.Context, env *environment, args []string) error {
	var (
		directory  string
		prefix     string
		shards     int
		samples    int
		sampleSize int
		seed       uint64
	)
	flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flagSet.StringVar(&directory, "dir", "", "output directory (created if missing)")
	flagSet.StringVar(&prefix, "prefix", "shard", "shard file name prefix")
	flagSet.IntVar(&shards, "shards", 4, "number of shards to write")
	flagSet.IntVar(&samples, "samples", 1000, "samples per shard")
	flagSet.IntVar(&sampleSize, "sample-size", 4096, "bytes per sample")
	flagSet.Uint64Var(&seed, "seed", 1, "random seed; shard i uses seed+i")
	if err := parseFlags(env, flagSet, "zcl generate --dir D [flags]", args); err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return err
	}

	if directory == "" {
		return errors.New("--dir is required")
	}
	if shards < 0 || samples < 0 || sampleSize < 0 {
		return fmt.Errorf("--shards, --samples, and --sample-size must not be negative")
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", directory, err)
	}

	var written int64
	for i := range shards {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(directory, fmt.Sprintf("%s-%05d.shard", prefix, i))
		if err := shardtest.WriteFile(path, shardtest.Synthetic(samples, sampleSize, seed+uint64(i))); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		written += info.Size()
		env.logger.Info("shard written",
			"path", path,
			"samples", samples,
			"size", humanize.IBytes(uint64(info.Size())),
		)
		fmt.Fprintln(env.stdout, path)
	}

	env.logger.Info("generate complete",
		"shards", shards,
		"samples", humanize.Comma(int64(shards)*int64(samples)),
		"total_size", humanize.IBytes(uint64(written)),
	)
	return nil
}
