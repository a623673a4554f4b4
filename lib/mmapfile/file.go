// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mmapfile

import (
	"fmt"
	"math/bits"
)

// File is a read-only view over one file's entire contents.
//
// Range, Bytes, and Len are safe for concurrent use. Close must not
// race with them.
type File struct {
	path   string
	data   []byte
	closed bool
	sys    sysState
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Len returns the mapped length in bytes.
func (f *File) Len() int {
	return len(f.data)
}

// Bytes returns the whole mapping. The slice is borrowed: it is valid
// until Close and must not be written to.
func (f *File) Bytes() []byte {
	return f.data[:len(f.data):len(f.data)]
}

// Range returns the borrowed view [offset, offset+length).
func (f *File) Range(offset, length uint64) ([]byte, error) {
	if f.closed {
		return nil, ErrClosed
	}
	end, carry := bits.Add64(offset, length, 0)
	if carry != 0 {
		return nil, fmt.Errorf("%w: offset %d + length %d overflows", ErrOutOfBounds, offset, length)
	}
	if end > uint64(len(f.data)) {
		return nil, fmt.Errorf("%w: offset %d length %d exceeds file size %d in %s",
			ErrOutOfBounds, offset, length, len(f.data), f.path)
	}
	return f.data[offset:end:end], nil
}

// Close releases the mapping and the file handle. Views obtained from
// the File must not be used afterwards. Calling Close more than once
// is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	err := f.release()
	f.data = nil
	return err
}
