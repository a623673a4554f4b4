// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mmapfile

import "errors"

var (
	// ErrIO is returned when a file cannot be opened, stated, or
	// mapped, and when a mapped page cannot be read (see [Guard]).
	ErrIO = errors.New("shard file I/O error")

	// ErrOutOfBounds is returned when a requested range overflows or
	// extends past the end of the mapping.
	ErrOutOfBounds = errors.New("range out of bounds")

	// ErrClosed is returned by Range after Close.
	ErrClosed = errors.New("memory map is closed")
)
