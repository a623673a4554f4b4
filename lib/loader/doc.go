// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package loader is the entry point for reading samples out of a
// shard set.
//
// A [Loader] owns a [shard.MultiReader] over every shard path and a
// [prefetch.Prefetcher] for warming shards before they are read. Reads
// ([Loader.Sample], [Loader.Batch]) are pure lookups into read-only
// mappings and may be issued from any number of goroutines.
//
// Prefetching is driven by a cursor over shard positions. Each call to
// [Loader.PrefetchNext] submits the next shards that have not yet been
// submitted and advances the cursor by how many it actually submitted;
// once the cursor reaches the end of the shard list further calls are
// no-ops. Prefetch control is single-owner: one goroutine calls
// PrefetchNext and WaitPrefetch. Prefetching never changes what a read
// returns.
//
// A Loader is never returned in a partially opened state. If any shard
// fails to open or validate, Open closes everything it opened and
// returns the error.
package loader
