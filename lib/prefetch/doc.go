// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package prefetch warms shard files into the page cache ahead of the
// reads that will touch them.
//
// A [Prefetcher] accepts batches of file paths with PrefetchFiles and
// returns immediately; Wait blocks until everything submitted so far
// has finished. Prefetching is purely advisory. It never changes the
// bytes a later read returns, only how long that read takes.
//
// Two implementations exist. [NoOp] does nothing and works everywhere.
// [Readahead] (Linux) runs each file as a task on an errgroup, bounded
// by a semaphore sized to the queue depth, and issues
// posix_fadvise(WILLNEED) over the whole file in fixed-size windows.
// File descriptors are closed by the task that opened them, so nothing
// is held open once Wait returns.
//
// [New] selects an implementation from a [Mode]. ModeAuto probes for
// kernel support and falls back to NoOp; ModeReadahead fails if the
// probe fails.
package prefetch
