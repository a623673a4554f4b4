// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mmapfile

import (
	"fmt"
	"runtime/debug"
)

// Guard runs fn with page-fault panics enabled for the calling
// goroutine. A fault raised while fn touches mapped memory (the file
// was truncated or the backing device failed) is returned as an error
// wrapping [ErrIO]. Panics that are not memory faults propagate.
func Guard(fn func() error) (err error) {
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			fault, ok := r.(interface{ Addr() uintptr })
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: page fault reading mapped memory at %#x: %v", ErrIO, fault.Addr(), r)
		}
	}()
	return fn()
}
