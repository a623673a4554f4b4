// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/zcl/lib/codec"
	"github.com/bureau-foundation/zcl/lib/shard"
)

// shardReport is the inspect output for one shard.
type shardReport struct {
	Path           string `json:"path"`
	Size           int64  `json:"size"`
	Version        uint16 `json:"version"`
	MetadataOffset uint64 `json:"metadata_offset"`
	DataOffset     uint64 `json:"data_offset"`
	NumSamples     int    `json:"num_samples"`
	SampleBytes    uint64 `json:"sample_bytes"`
	MinSampleSize  uint64 `json:"min_sample_size"`
	MaxSampleSize  uint64 `json:"max_sample_size"`
	Digest         string `json:"digest,omitempty"`
	Metadata       string `json:"metadata,omitempty"`
}

func runInspect(ctx context.Context, env *environment, args []string) error {
	var digest, metadata, outputJSON bool
	flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	flagSet.BoolVar(&digest, "digest", false, "compute a BLAKE3 digest over every sample in index order")
	flagSet.BoolVar(&metadata, "metadata", false, "include the metadata block in CBOR diagnostic notation")
	flagSet.BoolVar(&outputJSON, "json", false, "output as JSON")
	if err := parseFlags(env, flagSet, "zcl inspect [flags] shard...", args); err != nil {
		if errors.Is(err, errHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() == 0 {
		return errors.New("at least one shard path is required")
	}

	reports := make([]shardReport, 0, flagSet.NArg())
	for _, path := range flagSet.Args() {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := inspectShard(path, digest, metadata)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	if outputJSON {
		encoder := json.NewEncoder(env.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	}
	for _, report := range reports {
		printReport(env, report)
	}
	return nil
}

func inspectShard(path string, digest, metadata bool) (shardReport, error) {
	reader, err := shard.Open(path)
	if err != nil {
		return shardReport{}, err
	}
	defer reader.Close()

	header := reader.Header()
	report := shardReport{
		Path:           path,
		Size:           reader.Size(),
		Version:        header.Version,
		MetadataOffset: header.MetadataOffset,
		DataOffset:     header.DataOffset,
		NumSamples:     reader.NumSamples(),
	}

	for i, entry := range reader.Metadata().Samples {
		report.SampleBytes += entry.Size
		if i == 0 || entry.Size < report.MinSampleSize {
			report.MinSampleSize = entry.Size
		}
		report.MaxSampleSize = max(report.MaxSampleSize, entry.Size)
	}

	if digest {
		hasher := blake3.New()
		for i := range reader.NumSamples() {
			sample, err := reader.Sample(i)
			if err != nil {
				return shardReport{}, fmt.Errorf("digesting %s: %w", path, err)
			}
			hasher.Write(sample)
		}
		report.Digest = hex.EncodeToString(hasher.Sum(nil))
	}

	if metadata {
		blob, err := codec.Marshal(reader.Metadata())
		if err != nil {
			return shardReport{}, fmt.Errorf("encoding metadata of %s: %w", path, err)
		}
		report.Metadata, err = codec.Diagnose(blob)
		if err != nil {
			return shardReport{}, fmt.Errorf("diagnosing metadata of %s: %w", path, err)
		}
	}
	return report, nil
}

func printReport(env *environment, report shardReport) {
	fmt.Fprintf(env.stdout, "%s\n", report.Path)
	fmt.Fprintf(env.stdout, "  size:      %s\n", humanize.IBytes(uint64(report.Size)))
	fmt.Fprintf(env.stdout, "  version:   %d\n", report.Version)
	fmt.Fprintf(env.stdout, "  metadata:  offset %d\n", report.MetadataOffset)
	fmt.Fprintf(env.stdout, "  data:      offset %d\n", report.DataOffset)
	fmt.Fprintf(env.stdout, "  samples:   %s (%s)\n",
		humanize.Comma(int64(report.NumSamples)), humanize.IBytes(report.SampleBytes))
	if report.NumSamples > 0 {
		fmt.Fprintf(env.stdout, "  sizes:     min %s, max %s\n",
			humanize.IBytes(report.MinSampleSize), humanize.IBytes(report.MaxSampleSize))
	}
	if report.Digest != "" {
		fmt.Fprintf(env.stdout, "  blake3:    %s\n", report.Digest)
	}
	if report.Metadata != "" {
		fmt.Fprintf(env.stdout, "  %s\n", report.Metadata)
	}
}
