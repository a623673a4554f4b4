// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shardformat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/bureau-foundation/zcl/lib/codec"
)

// lengthPrefixSize is the size of the u64 byte count in front of the
// CBOR metadata item.
const lengthPrefixSize = 8

// SampleMetadata locates one sample inside the data section.
type SampleMetadata struct {
	// Offset is relative to the start of the data section.
	Offset uint64 `cbor:"offset"`
	Size   uint64 `cbor:"size"`
}

// End returns Offset+Size. The boolean is false if the sum overflows.
func (s SampleMetadata) End() (uint64, bool) {
	end, carry := bits.Add64(s.Offset, s.Size, 0)
	return end, carry == 0
}

// Metadata is the per-shard sample table. Position in Samples is the
// sample's local index.
type Metadata struct {
	NumSamples uint64           `cbor:"num_samples"`
	Samples    []SampleMetadata `cbor:"samples"`
}

// Validate checks the count invariant.
func (m Metadata) Validate() error {
	if m.NumSamples != uint64(len(m.Samples)) {
		return fmt.Errorf("%w: num_samples is %d but %d entries are present",
			ErrMalformedMetadata, m.NumSamples, len(m.Samples))
	}
	return nil
}

// metadataFields has the fields of Metadata without its methods, so
// CBOR encodes it as a map and never calls back into MarshalBinary.
type metadataFields Metadata

// AppendBinary appends the length-prefixed CBOR encoding of m to b.
func (m Metadata) AppendBinary(b []byte) ([]byte, error) {
	blob, err := codec.Marshal(metadataFields(m))
	if err != nil {
		return b, fmt.Errorf("encoding metadata: %w", err)
	}
	b = binary.LittleEndian.AppendUint64(b, uint64(len(blob)))
	return append(b, blob...), nil
}

// MarshalBinary returns the length-prefixed CBOR encoding of m.
func (m Metadata) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(nil)
}

// WriteTo writes the length-prefixed encoding of m to w.
func (m Metadata) WriteTo(w io.Writer) (int64, error) {
	encoded, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	written, err := w.Write(encoded)
	return int64(written), err
}

// ParseMetadata decodes a length-prefixed metadata block from the start
// of b. Bytes after the declared blob length are ignored, so b may be
// the whole [MetadataOffset, DataOffset) span including padding.
func ParseMetadata(b []byte) (Metadata, error) {
	if len(b) < lengthPrefixSize {
		return Metadata{}, fmt.Errorf("%w: length prefix needs %d bytes, have %d",
			ErrMalformedMetadata, lengthPrefixSize, len(b))
	}
	blobLength := binary.LittleEndian.Uint64(b)
	available := uint64(len(b) - lengthPrefixSize)
	if blobLength > available {
		return Metadata{}, fmt.Errorf("%w: blob length %d exceeds %d available bytes",
			ErrMalformedMetadata, blobLength, available)
	}
	return decodeMetadata(b[lengthPrefixSize : lengthPrefixSize+blobLength])
}

// ReadMetadata reads one length-prefixed metadata block from r. The
// declared length is untrusted, so the blob is read through a limit
// rather than preallocated.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var prefix [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Metadata{}, fmt.Errorf("%w: reading length prefix: %v", ErrMalformedMetadata, err)
		}
		return Metadata{}, fmt.Errorf("reading metadata length prefix: %w", err)
	}
	blobLength := binary.LittleEndian.Uint64(prefix[:])

	blob, err := io.ReadAll(io.LimitReader(r, int64(min(blobLength, 1<<63-1))))
	if err != nil {
		return Metadata{}, fmt.Errorf("reading metadata blob: %w", err)
	}
	if uint64(len(blob)) != blobLength {
		return Metadata{}, fmt.Errorf("%w: blob length %d but only %d bytes readable",
			ErrMalformedMetadata, blobLength, len(blob))
	}
	return decodeMetadata(blob)
}

func decodeMetadata(blob []byte) (Metadata, error) {
	var metadata Metadata
	if err := codec.Unmarshal(blob, &metadata); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if err := metadata.Validate(); err != nil {
		return Metadata{}, err
	}
	return metadata, nil
}
