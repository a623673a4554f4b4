// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shard

import (
	"fmt"

	"github.com/bureau-foundation/zcl/lib/mmapfile"
)

var (
	// ErrIndexOutOfBounds is returned for a local or global sample
	// index outside its table. It wraps mmapfile.ErrOutOfBounds so
	// callers can treat every bounds failure alike.
	ErrIndexOutOfBounds = fmt.Errorf("sample index %w", mmapfile.ErrOutOfBounds)

	// ErrClosed is returned by reads on a closed Reader.
	ErrClosed = mmapfile.ErrClosed
)
