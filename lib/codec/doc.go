// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration used for the
// self-describing parts of the shard format.
//
// The fixed shard header is a hand-laid little-endian struct (see
// lib/shardformat). Everything variable-size that follows it, today the
// per-sample metadata table, is a CBOR item (RFC 8949). CBOR carries
// field names as text map keys, so the metadata schema can gain fields
// without bumping the header version: old readers skip keys they do not
// know, new readers see zero values for keys old writers never wrote.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same metadata always produces identical bytes, which keeps shard files
// reproducible and their digests stable.
//
// The decoder is configured for untrusted input read straight out of a
// memory map:
//
//   - duplicate map keys are rejected instead of last-wins
//   - the array element limit is raised to [MaxArrayElements] so large
//     shards (millions of samples) decode, while still bounding what a
//     corrupt length field can make the decoder allocate
//   - unknown fields are ignored for forward compatibility
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types serialized through this package use `cbor` struct tags.
//
// This package depends on no other zcl packages.
package codec
