// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package prefetch

import "log/slog"

// Readahead is only implemented on Linux.
type Readahead struct{}

// NewReadahead always fails with ErrUnsupported off Linux.
func NewReadahead(queueDepth int, logger *slog.Logger) (*Readahead, error) {
	return nil, ErrUnsupported
}

// PrefetchFiles always fails with ErrUnsupported.
func (*Readahead) PrefetchFiles([]string) error { return ErrUnsupported }

// Wait returns nil; nothing can have been submitted.
func (*Readahead) Wait() error { return nil }

// Stats returns zero counters.
func (*Readahead) Stats() Stats { return Stats{} }
