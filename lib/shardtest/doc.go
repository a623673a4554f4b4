// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shardtest builds shard files for tests and synthetic
// benchmarks.
//
// This is the only shard writer in the repository. It lays a shard out
// the simplest valid way: header at offset 0, metadata immediately after
// the header, sample bytes packed back to back after the metadata.
// There is no streaming, no compaction, and no attempt at a production
// write path.
//
// [WriteShard] and [Patch] take a testing.TB and call t.Fatalf on
// failure, since fixture setup failures are not recoverable. [Build],
// [WriteFile], and [Synthetic] return errors (or cannot fail) so
// cmd/zcl can use them to generate benchmark data.
package shardtest
