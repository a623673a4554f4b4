// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(darwin || linux)

package mmapfile

import (
	"fmt"
	"os"
)

type sysState struct{}

// Open reads the file at path into an owned buffer. This platform has
// no unix mmap path; the view has the same bounds semantics but is a
// copy.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stating %s: %w", ErrIO, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrIO, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return &File{path: path, data: data}, nil
}

func (f *File) release() error {
	return nil
}

// Advise is accepted and ignored: an owned buffer has no paging hints.
func (f *File) Advise(advice Advice) error {
	if f.closed {
		return ErrClosed
	}
	return nil
}
