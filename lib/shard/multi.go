// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shard

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Location identifies a sample by shard position and local index.
type Location struct {
	Shard int
	Local int
}

// location is the packed form stored in the global index. Local
// indices fit in 32 bits because lib/codec caps metadata arrays below
// 2^31 entries.
type location struct {
	shard uint32
	local uint32
}

// MultiReader serves a flat global sample index over several shards.
type MultiReader struct {
	readers []*Reader
	paths   []string
	index   []location
}

// OpenMulti opens every path in order. If any shard fails to open, the
// shards opened so far are closed and the error is returned; no
// partial reader is produced.
func OpenMulti(paths []string) (*MultiReader, error) {
	if uint64(len(paths)) > math.MaxUint32 {
		return nil, fmt.Errorf("%d shards exceeds the supported maximum of %d", len(paths), uint32(math.MaxUint32))
	}

	multi := &MultiReader{
		readers: make([]*Reader, 0, len(paths)),
		paths:   slices.Clone(paths),
	}
	total := 0
	for _, path := range paths {
		reader, err := Open(path)
		if err != nil {
			multi.Close()
			return nil, err
		}
		multi.readers = append(multi.readers, reader)
		total += reader.NumSamples()
	}

	multi.index = make([]location, 0, total)
	for shardIndex, reader := range multi.readers {
		for local := range reader.NumSamples() {
			multi.index = append(multi.index, location{shard: uint32(shardIndex), local: uint32(local)})
		}
	}
	return multi, nil
}

// Locate resolves a global index to its shard and local index.
func (m *MultiReader) Locate(global int) (Location, error) {
	if global < 0 || global >= len(m.index) {
		return Location{}, fmt.Errorf("%w: global index %d not in [0, %d)", ErrIndexOutOfBounds, global, len(m.index))
	}
	entry := m.index[global]
	return Location{Shard: int(entry.shard), Local: int(entry.local)}, nil
}

// Sample returns the bytes of the sample at the global index.
func (m *MultiReader) Sample(global int) ([]byte, error) {
	if global < 0 || global >= len(m.index) {
		return nil, fmt.Errorf("%w: global index %d not in [0, %d)", ErrIndexOutOfBounds, global, len(m.index))
	}
	entry := m.index[global]
	return m.readers[entry.shard].Sample(int(entry.local))
}

// Batch returns the samples at the global indices in the given order,
// failing on the first bad index.
func (m *MultiReader) Batch(globals []int) ([][]byte, error) {
	samples := make([][]byte, len(globals))
	for position, global := range globals {
		sample, err := m.Sample(global)
		if err != nil {
			return nil, err
		}
		samples[position] = sample
	}
	return samples, nil
}

// TotalSamples returns the number of samples across all shards.
func (m *MultiReader) TotalSamples() int {
	return len(m.index)
}

// NumShards returns the number of shards.
func (m *MultiReader) NumShards() int {
	return len(m.readers)
}

// Paths returns the shard paths in index order.
func (m *MultiReader) Paths() []string {
	return slices.Clone(m.paths)
}

// Shard returns the reader at position i, or nil if out of range.
// The MultiReader keeps ownership: do not close it.
func (m *MultiReader) Shard(i int) *Reader {
	if i < 0 || i >= len(m.readers) {
		return nil
	}
	return m.readers[i]
}

// MappedBytes returns the total size of all mapped shards.
func (m *MultiReader) MappedBytes() int64 {
	var total int64
	for _, reader := range m.readers {
		total += reader.Size()
	}
	return total
}

// Close closes every shard.
func (m *MultiReader) Close() error {
	var errs []error
	for _, reader := range m.readers {
		if err := reader.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
