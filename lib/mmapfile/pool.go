// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mmapfile

import "errors"

// Pool owns a set of mapped files addressed by insertion order.
type Pool struct {
	files []*File
}

// Add maps path and returns its index in the pool.
func (p *Pool) Add(path string) (int, error) {
	file, err := Open(path)
	if err != nil {
		return 0, err
	}
	p.files = append(p.files, file)
	return len(p.files) - 1, nil
}

// Get returns the file at index, or nil if index is out of range.
func (p *Pool) Get(index int) *File {
	if index < 0 || index >= len(p.files) {
		return nil
	}
	return p.files[index]
}

// Len returns the number of files in the pool.
func (p *Pool) Len() int {
	return len(p.files)
}

// TotalSize returns the sum of all mapped lengths in bytes.
func (p *Pool) TotalSize() int64 {
	var total int64
	for _, file := range p.files {
		total += int64(file.Len())
	}
	return total
}

// Close closes every file and empties the pool.
func (p *Pool) Close() error {
	var errs []error
	for _, file := range p.files {
		if err := file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.files = nil
	return errors.Join(errs...)
}
