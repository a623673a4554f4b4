// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prefetch

import (
	"errors"
	"fmt"
	"log/slog"
)

// DefaultQueueDepth bounds the number of files warmed concurrently
// when the caller does not choose a depth.
const DefaultQueueDepth = 32

var (
	// ErrPrefetch wraps the first failure reported by Wait.
	ErrPrefetch = errors.New("prefetch failed")

	// ErrUnsupported is returned when the readahead backend is not
	// available on this platform or kernel.
	ErrUnsupported = errors.New("readahead prefetch not supported")
)

// Prefetcher warms files ahead of use.
//
// PrefetchFiles queues every path and returns without waiting for I/O.
// Wait blocks until all queued work has completed and reports the first
// failure, if any, wrapped in [ErrPrefetch]. Both calls are meant to be
// driven by a single owner.
type Prefetcher interface {
	PrefetchFiles(paths []string) error
	Wait() error
}

// NoOp is a Prefetcher that does nothing. Both methods always succeed.
type NoOp struct{}

// PrefetchFiles ignores paths.
func (NoOp) PrefetchFiles([]string) error { return nil }

// Wait returns immediately.
func (NoOp) Wait() error { return nil }

// Stats counts prefetch work since construction.
type Stats struct {
	Submitted    uint64
	Completed    uint64
	Failed       uint64
	BytesAdvised uint64
}

// Mode selects a Prefetcher implementation.
type Mode string

const (
	// ModeAuto uses readahead when the kernel supports it and NoOp
	// otherwise.
	ModeAuto Mode = "auto"

	// ModeNone always uses NoOp.
	ModeNone Mode = "none"

	// ModeReadahead requires the readahead backend.
	ModeReadahead Mode = "readahead"
)

// ParseMode converts a configuration string into a Mode. The empty
// string means ModeAuto.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeNone, ModeReadahead:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("unknown prefetch mode %q (valid: auto, none, readahead)", value)
	}
}

// New builds the Prefetcher for mode. A queueDepth of zero or less
// means DefaultQueueDepth. A nil logger discards.
func New(mode Mode, queueDepth int, logger *slog.Logger) (Prefetcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if queueDepth <= 0 {
		queueDepth = DefaultQueueDepth
	}

	switch mode {
	case ModeNone:
		return NoOp{}, nil
	case ModeAuto, "":
		readahead, err := NewReadahead(queueDepth, logger)
		if err != nil {
			logger.Debug("readahead prefetch unavailable, using no-op", "error", err)
			return NoOp{}, nil
		}
		return readahead, nil
	case ModeReadahead:
		readahead, err := NewReadahead(queueDepth, logger)
		if err != nil {
			return nil, err
		}
		return readahead, nil
	default:
		return nil, fmt.Errorf("unknown prefetch mode %q", mode)
	}
}
