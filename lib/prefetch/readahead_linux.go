// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prefetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sys/unix"
)

// readaheadChunk is the window passed to each fadvise call.
const readaheadChunk = 8 << 20

// Readahead warms files with posix_fadvise(POSIX_FADV_WILLNEED).
type Readahead struct {
	logger *slog.Logger
	slots  *semaphore.Weighted

	mu    sync.Mutex
	group *errgroup.Group

	submitted    atomic.Uint64
	completed    atomic.Uint64
	failed       atomic.Uint64
	bytesAdvised atomic.Uint64
}

// NewReadahead probes for fadvise support and returns a Readahead that
// keeps at most queueDepth files in flight. The probe advises
// /proc/self/exe, which always exists for a running process.
func NewReadahead(queueDepth int, logger *slog.Logger) (*Readahead, error) {
	if queueDepth <= 0 {
		return nil, fmt.Errorf("queue depth must be positive, got %d", queueDepth)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := probe(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return &Readahead{
		logger: logger,
		slots:  semaphore.NewWeighted(int64(queueDepth)),
		group:  new(errgroup.Group),
	}, nil
}

func probe() error {
	fd, err := unix.Open("/proc/self/exe", unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("opening probe file: %w", err)
	}
	defer unix.Close(fd)
	if err := unix.Fadvise(fd, 0, 0, unix.FADV_WILLNEED); err != nil {
		return fmt.Errorf("fadvise: %w", err)
	}
	return nil
}

// PrefetchFiles starts one task per path and returns immediately.
func (r *Readahead) PrefetchFiles(paths []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, path := range paths {
		r.submitted.Add(1)
		r.group.Go(func() error {
			// Acquire cannot fail with a background context.
			_ = r.slots.Acquire(context.Background(), 1)
			defer r.slots.Release(1)

			advised, err := warm(path)
			r.bytesAdvised.Add(advised)
			if err != nil {
				r.failed.Add(1)
				r.logger.Debug("prefetch failed", "path", path, "error", err)
				return err
			}
			r.completed.Add(1)
			return nil
		})
	}
	return nil
}

// Wait blocks until every submitted task has finished. The first
// failure is returned wrapped in ErrPrefetch. Tasks submitted after
// Wait starts are tracked by the next Wait.
func (r *Readahead) Wait() error {
	r.mu.Lock()
	group := r.group
	r.group = new(errgroup.Group)
	r.mu.Unlock()

	if err := group.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrPrefetch, err)
	}
	return nil
}

// Stats returns a snapshot of the counters.
func (r *Readahead) Stats() Stats {
	return Stats{
		Submitted:    r.submitted.Load(),
		Completed:    r.completed.Load(),
		Failed:       r.failed.Load(),
		BytesAdvised: r.bytesAdvised.Load(),
	}
}

// warm advises the file in readaheadChunk windows with
// POSIX_FADV_WILLNEED. It returns the number of bytes covered by
// accepted advice.
func warm(path string) (uint64, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer unix.Close(fd)

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	size := stat.Size
	var advised uint64
	for offset := int64(0); offset < size; offset += readaheadChunk {
		count := min(size-offset, readaheadChunk)
		if err := unix.Fadvise(fd, offset, count, unix.FADV_WILLNEED); err != nil {
			// Some filesystems reject the advice outright. Reads still
			// work, they just start cold.
			if errors.Is(err, unix.EINVAL) {
				break
			}
			return advised, fmt.Errorf("fadvise %s at %d: %w", path, offset, err)
		}
		advised += uint64(count)
	}
	return advised, nil
}
