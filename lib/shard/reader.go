// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shard

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/bureau-foundation/zcl/lib/mmapfile"
	"github.com/bureau-foundation/zcl/lib/shardformat"
)

// Reader gives random access to the samples of one shard file.
type Reader struct {
	file      *mmapfile.File
	header    shardformat.Header
	metadata  shardformat.Metadata
	dataStart uint64
}

// Open maps and validates the shard at path.
func Open(path string) (*Reader, error) {
	file, err := mmapfile.Open(path)
	if err != nil {
		return nil, err
	}

	reader := &Reader{file: file}
	if err := mmapfile.Guard(reader.parse); err != nil {
		file.Close()
		return nil, fmt.Errorf("opening shard %s: %w", path, err)
	}
	return reader, nil
}

// parse reads the structural blocks out of the mapping. It runs under
// mmapfile.Guard.
func (r *Reader) parse() error {
	fileSize := uint64(r.file.Len())

	header, err := shardformat.ParseHeader(r.file.Bytes())
	if err != nil {
		return err
	}
	if err := header.Validate(); err != nil {
		return err
	}
	if header.MetadataOffset < shardformat.HeaderSize {
		return fmt.Errorf("%w: metadata offset %d overlaps the %d-byte header",
			shardformat.ErrBadOffsets, header.MetadataOffset, shardformat.HeaderSize)
	}
	if header.DataOffset > fileSize {
		return fmt.Errorf("%w: data offset %d exceeds file size %d",
			shardformat.ErrBadOffsets, header.DataOffset, fileSize)
	}

	span, err := r.file.Range(header.MetadataOffset, header.DataOffset-header.MetadataOffset)
	if err != nil {
		return fmt.Errorf("%w: metadata span: %v", shardformat.ErrBadOffsets, err)
	}
	metadata, err := shardformat.ParseMetadata(span)
	if err != nil {
		return err
	}

	r.header = header
	r.metadata = metadata
	r.dataStart = header.DataOffset
	return nil
}

// NumSamples returns the number of samples in the shard.
func (r *Reader) NumSamples() int {
	return len(r.metadata.Samples)
}

// Sample returns the bytes of the sample at local index i.
func (r *Reader) Sample(i int) ([]byte, error) {
	if i < 0 || i >= len(r.metadata.Samples) {
		return nil, fmt.Errorf("%w: %d not in [0, %d) for %s",
			ErrIndexOutOfBounds, i, len(r.metadata.Samples), r.file.Path())
	}
	entry := r.metadata.Samples[i]

	start, carry := bits.Add64(r.dataStart, entry.Offset, 0)
	if carry != 0 {
		return nil, fmt.Errorf("sample %d of %s: %w: data offset %d + sample offset %d overflows",
			i, r.file.Path(), mmapfile.ErrOutOfBounds, r.dataStart, entry.Offset)
	}
	view, err := r.file.Range(start, entry.Size)
	if err != nil {
		return nil, fmt.Errorf("sample %d of %s: %w", i, r.file.Path(), err)
	}
	return view, nil
}

// Batch returns the samples at indices in the given order. It fails on
// the first bad index and returns no partial result.
func (r *Reader) Batch(indices []int) ([][]byte, error) {
	samples := make([][]byte, len(indices))
	for position, index := range indices {
		sample, err := r.Sample(index)
		if err != nil {
			return nil, err
		}
		samples[position] = sample
	}
	return samples, nil
}

// Path returns the shard's file path.
func (r *Reader) Path() string {
	return r.file.Path()
}

// Header returns the shard header.
func (r *Reader) Header() shardformat.Header {
	return r.header
}

// Metadata returns a copy of the sample table.
func (r *Reader) Metadata() shardformat.Metadata {
	return shardformat.Metadata{
		NumSamples: r.metadata.NumSamples,
		Samples:    slices.Clone(r.metadata.Samples),
	}
}

// Size returns the mapped file size in bytes.
func (r *Reader) Size() int64 {
	return int64(r.file.Len())
}

// Advise passes an access-pattern hint for the shard's mapping to the
// kernel.
func (r *Reader) Advise(advice mmapfile.Advice) error {
	return r.file.Advise(advice)
}

// Close unmaps the shard. Slices returned by Sample and Batch must
// not be used afterwards.
func (r *Reader) Close() error {
	return r.file.Close()
}
