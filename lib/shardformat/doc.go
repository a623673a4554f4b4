// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shardformat defines the on-disk layout of a shard file and
// encodes/decodes its two structural blocks.
//
// A shard is little-endian throughout:
//
//	[0, 22)                         Header
//	[MetadataOffset, DataOffset)    byteLength(u64) | CBOR(Metadata)
//	[DataOffset, EOF)               concatenated raw sample bytes
//
// The header is fixed-size so a reader can locate and validate the
// structural offsets in O(1) before paying for the variable-size
// metadata. The metadata block is a self-describing CBOR item (see
// lib/codec), so its schema can evolve without a header version bump.
//
// Sample i lives at [DataOffset + Samples[i].Offset, +Samples[i].Size).
// Offsets are relative to the data section and are NOT validated
// against the file length here: that check happens per access in
// lib/shard, where the mapped length is known.
//
// There is exactly one supported [Version]. A header with any other
// version, or any magic other than [Magic], is rejected outright with
// an error wrapping [ErrFormat]. No compatibility shims.
//
// This package performs no I/O beyond the io.Reader/io.Writer it is
// handed and depends only on lib/codec.
package shardformat
