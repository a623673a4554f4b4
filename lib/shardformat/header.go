// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shardformat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// Magic identifies a shard file. The bytes "ZCLD" read as a
	// big-endian integer; on disk it is stored little-endian like
	// every other field.
	Magic uint32 = 0x5A434C44

	// Version is the single supported header version.
	Version uint16 = 1

	// HeaderSize is the encoded size of [Header] in bytes.
	HeaderSize = 4 + 2 + 8 + 8
)

// Header field offsets.
const (
	headerOffsetMagic          = 0
	headerOffsetVersion        = 4
	headerOffsetMetadataOffset = 6
	headerOffsetDataOffset     = 14
)

// Header is the fixed 22-byte block at offset 0 of every shard.
type Header struct {
	Magic          uint32
	Version        uint16
	MetadataOffset uint64
	DataOffset     uint64
}

// NewHeader returns a header with the current magic and version.
func NewHeader(metadataOffset, dataOffset uint64) Header {
	return Header{
		Magic:          Magic,
		Version:        Version,
		MetadataOffset: metadataOffset,
		DataOffset:     dataOffset,
	}
}

// AppendBinary appends the encoded header to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, h.Magic)
	b = binary.LittleEndian.AppendUint16(b, h.Version)
	b = binary.LittleEndian.AppendUint64(b, h.MetadataOffset)
	b = binary.LittleEndian.AppendUint64(b, h.DataOffset)
	return b, nil
}

// MarshalBinary returns the HeaderSize-byte encoding of h.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// WriteTo writes the encoded header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	encoded, _ := h.MarshalBinary()
	written, err := w.Write(encoded)
	return int64(written), err
}

// ParseHeader decodes a header from the first HeaderSize bytes of b.
// Magic and version are checked as they are read; offsets are not
// (call [Header.Validate]).
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(b))
	}

	magic := binary.LittleEndian.Uint32(b[headerOffsetMagic:])
	if magic != Magic {
		return Header{}, fmt.Errorf("%w: 0x%08X", ErrBadMagic, magic)
	}
	version := binary.LittleEndian.Uint16(b[headerOffsetVersion:])
	if version != Version {
		return Header{}, fmt.Errorf("%w: %d (want %d)", ErrUnsupportedVersion, version, Version)
	}

	return Header{
		Magic:          magic,
		Version:        version,
		MetadataOffset: binary.LittleEndian.Uint64(b[headerOffsetMetadataOffset:]),
		DataOffset:     binary.LittleEndian.Uint64(b[headerOffsetDataOffset:]),
	}, nil
}

// ReadHeader reads and decodes exactly HeaderSize bytes from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buffer [HeaderSize]byte
	if _, err := io.ReadFull(r, buffer[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: reading header: %v", ErrTruncated, err)
		}
		return Header{}, fmt.Errorf("reading header: %w", err)
	}
	return ParseHeader(buffer[:])
}

// Validate re-checks a header built from untrusted bytes before its
// offsets are used for slicing.
func (h Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: 0x%08X", ErrBadMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d (want %d)", ErrUnsupportedVersion, h.Version, Version)
	}
	if h.MetadataOffset >= h.DataOffset {
		return fmt.Errorf("%w: metadata offset %d, data offset %d", ErrBadOffsets, h.MetadataOffset, h.DataOffset)
	}
	return nil
}
