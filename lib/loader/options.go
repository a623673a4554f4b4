// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"log/slog"

	"github.com/bureau-foundation/zcl/lib/prefetch"
)

type options struct {
	mode       prefetch.Mode
	queueDepth int
	prefetcher prefetch.Prefetcher
	logger     *slog.Logger
	metrics    *Metrics
}

// Option configures Open.
type Option func(*options)

// WithPrefetchMode selects the prefetch backend. The default is
// prefetch.ModeAuto. Unlike the default, prefetch.ModeReadahead does not
// fall back to NoOp: Open fails when the kernel lacks fadvise support.
func WithPrefetchMode(mode prefetch.Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithQueueDepth bounds concurrent prefetch I/O. The default is
// prefetch.DefaultQueueDepth.
func WithQueueDepth(depth int) Option {
	return func(o *options) { o.queueDepth = depth }
}

// WithPrefetcher uses prefetcher instead of building one from the mode
// and queue depth.
func WithPrefetcher(prefetcher prefetch.Prefetcher) Option {
	return func(o *options) { o.prefetcher = prefetcher }
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records reads and prefetch activity into metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}
