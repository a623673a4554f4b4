// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shardtest

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/zcl/lib/shardformat"
)

// Build returns the bytes of a shard holding samples in order.
func Build(samples [][]byte) ([]byte, error) {
	metadata := shardformat.Metadata{
		NumSamples: uint64(len(samples)),
		Samples:    make([]shardformat.SampleMetadata, len(samples)),
	}
	var dataLength uint64
	for i, sample := range samples {
		metadata.Samples[i] = shardformat.SampleMetadata{Offset: dataLength, Size: uint64(len(sample))}
		dataLength += uint64(len(sample))
	}

	encodedMetadata, err := metadata.MarshalBinary()
	if err != nil {
		return nil, err
	}

	metadataOffset := uint64(shardformat.HeaderSize)
	dataOffset := metadataOffset + uint64(len(encodedMetadata))

	shard := make([]byte, 0, dataOffset+dataLength)
	shard, err = shardformat.NewHeader(metadataOffset, dataOffset).AppendBinary(shard)
	if err != nil {
		return nil, err
	}
	shard = append(shard, encodedMetadata...)
	for _, sample := range samples {
		shard = append(shard, sample...)
	}
	return shard, nil
}

// WriteFile builds a shard from samples and writes it to path.
func WriteFile(path string, samples [][]byte) error {
	shard, err := Build(samples)
	if err != nil {
		return fmt.Errorf("building shard %s: %w", path, err)
	}
	if err := os.WriteFile(path, shard, 0o644); err != nil {
		return fmt.Errorf("writing shard %s: %w", path, err)
	}
	return nil
}

// WriteShard writes a shard named name under dir holding the given
// string samples and returns its path.
func WriteShard(t testing.TB, dir, name string, samples ...string) string {
	t.Helper()
	raw := make([][]byte, len(samples))
	for i, sample := range samples {
		raw[i] = []byte(sample)
	}
	path := filepath.Join(dir, name)
	if err := WriteFile(path, raw); err != nil {
		t.Fatalf("%v", err)
	}
	return path
}

// Patch overwrites bytes in the file at path starting at offset. Use
// it to corrupt a shard after writing it.
func Patch(t testing.TB, path string, offset int64, replacement []byte) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("opening %s for patching: %v", path, err)
	}
	defer file.Close()
	if _, err := file.WriteAt(replacement, offset); err != nil {
		t.Fatalf("patching %s at %d: %v", path, offset, err)
	}
}

// Synthetic returns numSamples pseudo-random samples of sampleSize
// bytes each. The same seed always yields the same samples.
func Synthetic(numSamples, sampleSize int, seed uint64) [][]byte {
	source := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	samples := make([][]byte, numSamples)
	for i := range samples {
		sample := make([]byte, sampleSize)
		for j := range sample {
			sample[j] = byte(source.Uint32())
		}
		samples[i] = sample
	}
	return samples
}
