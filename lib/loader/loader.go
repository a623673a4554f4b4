// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/zcl/lib/prefetch"
	"github.com/bureau-foundation/zcl/lib/shard"
)

// Loader serves samples from a set of shards and prefetches shards
// ahead of the reader.
type Loader struct {
	reader     *shard.MultiReader
	prefetcher prefetch.Prefetcher
	logger     *slog.Logger
	metrics    *Metrics

	// cursor is the position of the next shard path to submit for
	// prefetch. Only PrefetchNext moves it.
	cursor int
}

// Open opens every shard in paths and prepares the prefetcher.
func Open(paths []string, opts ...Option) (*Loader, error) {
	config := options{mode: prefetch.ModeAuto}
	for _, opt := range opts {
		opt(&config)
	}
	if config.logger == nil {
		config.logger = slog.New(slog.DiscardHandler)
	}

	prefetcher := config.prefetcher
	if prefetcher == nil {
		var err error
		prefetcher, err = prefetch.New(config.mode, config.queueDepth, config.logger)
		if err != nil {
			return nil, fmt.Errorf("creating prefetcher: %w", err)
		}
	}

	reader, err := shard.OpenMulti(paths)
	if err != nil {
		return nil, err
	}

	config.logger.Debug("loader opened",
		"shards", reader.NumShards(),
		"samples", reader.TotalSamples(),
		"mapped_bytes", reader.MappedBytes(),
		"prefetcher", fmt.Sprintf("%T", prefetcher),
	)
	return &Loader{
		reader:     reader,
		prefetcher: prefetcher,
		logger:     config.logger,
		metrics:    config.metrics,
	}, nil
}

// Sample returns the bytes of the sample at global index i. The slice
// aliases the shard mapping and is valid until Close.
func (l *Loader) Sample(i int) ([]byte, error) {
	sample, err := l.reader.Sample(i)
	if err != nil {
		l.metrics.recordReadError()
		return nil, err
	}
	l.metrics.recordRead(len(sample))
	return sample, nil
}

// Batch returns the samples at the given global indices, in order. If
// any index fails, no samples are returned.
func (l *Loader) Batch(indices []int) ([][]byte, error) {
	samples, err := l.reader.Batch(indices)
	if err != nil {
		l.metrics.recordReadError()
		return nil, err
	}
	for _, sample := range samples {
		l.metrics.recordRead(len(sample))
	}
	return samples, nil
}

// Locate resolves a global index to its shard and local index.
func (l *Loader) Locate(i int) (shard.Location, error) {
	return l.reader.Locate(i)
}

// PrefetchNext submits up to count shards after the cursor for
// prefetch and advances the cursor past them. With the cursor at the
// end, or count zero, it does nothing. If the prefetcher rejects the
// submission the cursor stays where it was.
func (l *Loader) PrefetchNext(count int) error {
	if count < 0 {
		return fmt.Errorf("prefetch count must not be negative, got %d", count)
	}
	paths := l.reader.Paths()
	count = min(count, len(paths)-l.cursor)
	if count == 0 {
		return nil
	}
	end := l.cursor + count

	batch := paths[l.cursor:end]
	if err := l.prefetcher.PrefetchFiles(batch); err != nil {
		return fmt.Errorf("submitting %d shards for prefetch: %w", len(batch), err)
	}
	l.logger.Debug("prefetch submitted", "from", l.cursor, "to", end)
	l.cursor = end
	l.metrics.recordPrefetch(len(batch), l.cursor)
	return nil
}

// WaitPrefetch blocks until every submitted prefetch has finished. It
// does not move the cursor.
func (l *Loader) WaitPrefetch() error {
	start := time.Now()
	err := l.prefetcher.Wait()
	l.metrics.recordWait(time.Since(start))
	if err != nil {
		l.logger.Warn("prefetch wait reported failure", "error", err)
	}
	return err
}

// PrefetchCursor returns the position of the next shard that
// PrefetchNext would submit.
func (l *Loader) PrefetchCursor() int {
	return l.cursor
}

// TotalSamples returns the number of samples across all shards.
func (l *Loader) TotalSamples() int {
	return l.reader.TotalSamples()
}

// NumShards returns the number of shards.
func (l *Loader) NumShards() int {
	return l.reader.NumShards()
}

// Paths returns the shard paths in global index order.
func (l *Loader) Paths() []string {
	return l.reader.Paths()
}

// Close waits for outstanding prefetch work and unmaps every shard.
// Sample slices obtained earlier must not be used afterwards.
func (l *Loader) Close() error {
	waitErr := l.prefetcher.Wait()
	return errors.Join(waitErr, l.reader.Close())
}
