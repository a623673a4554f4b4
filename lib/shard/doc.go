// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shard resolves sample indices to zero-copy byte views over
// memory-mapped shard files.
//
// A [Reader] owns exactly one shard. [Open] maps the file, parses and
// validates the header, checks that the metadata and data sections lie
// inside the file, and decodes the metadata. Any failure closes the
// mapping and returns an error: a Reader is either fully valid or never
// produced, and there are no retries at this layer.
//
// [Reader.Sample] translates a local index into the absolute range
// DataOffset + Samples[i].Offset for Samples[i].Size bytes and returns
// it straight out of the mapping. Per-sample ranges are checked at
// access time, not at open time, so a truncated or corrupt data section
// surfaces as an error on the affected samples only and leaves the
// Reader usable.
//
// A [MultiReader] puts N Readers behind one flat global index. The
// index is built once at [OpenMulti] by concatenating each shard's
// local indices in path order, making lookup O(1) at the cost of eight
// bytes per sample. Shards are never added or removed afterwards, so
// concurrent reads need no locking.
//
// Errors:
//
//   - structural problems wrap shardformat.ErrFormat
//   - open/map failures wrap mmapfile.ErrIO
//   - bad indices wrap [ErrIndexOutOfBounds], which itself wraps
//     mmapfile.ErrOutOfBounds, as do byte ranges that run past the end
//     of the file
//
// Returned slices are borrowed from the mapping. They are valid until
// the owning Reader (or MultiReader) is closed and must not be
// modified.
package shard
