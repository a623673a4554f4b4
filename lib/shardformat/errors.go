// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shardformat

import (
	"errors"
	"fmt"
)

// ErrFormat is the parent of every structural error in this package.
// Test with errors.Is(err, ErrFormat) to catch any of them.
var ErrFormat = errors.New("invalid shard format")

var (
	// ErrBadMagic is returned when the header does not start with [Magic].
	ErrBadMagic = fmt.Errorf("%w: bad magic", ErrFormat)

	// ErrUnsupportedVersion is returned for any header version other
	// than [Version].
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrFormat)

	// ErrBadOffsets is returned when MetadataOffset >= DataOffset.
	ErrBadOffsets = fmt.Errorf("%w: inconsistent offsets", ErrFormat)

	// ErrTruncated is returned when fewer bytes are available than a
	// block declares.
	ErrTruncated = fmt.Errorf("%w: truncated", ErrFormat)

	// ErrMalformedMetadata is returned when the metadata blob does not
	// decode or violates its count invariant.
	ErrMalformedMetadata = fmt.Errorf("%w: malformed metadata", ErrFormat)
)
