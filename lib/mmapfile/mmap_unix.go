// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package mmapfile

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// sysState holds the descriptor backing the mapping.
type sysState struct {
	fd     int
	mapped bool
}

// Open maps the file at path read-only in its entirety.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrIO, path, err)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: stating %s: %w", ErrIO, path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFREG {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrIO, path)
	}
	if int64(int(stat.Size)) != stat.Size {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s is %d bytes, too large to map", ErrIO, path, stat.Size)
	}

	file := &File{path: path, sys: sysState{fd: fd}}

	// mmap rejects zero-length mappings; an empty file is an empty view.
	if stat.Size == 0 {
		return file, nil
	}

	data, err := unix.Mmap(fd, 0, int(stat.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: memory-mapping %s: %w", ErrIO, path, err)
	}
	file.data = data
	file.sys.mapped = true
	return file, nil
}

func (f *File) release() error {
	var firstErr error
	if f.sys.mapped {
		if err := unix.Munmap(f.data); err != nil {
			firstErr = fmt.Errorf("unmapping %s: %w", f.path, err)
		}
		f.sys.mapped = false
	}
	if err := unix.Close(f.sys.fd); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing %s: %w", f.path, err)
	}
	f.sys.fd = -1
	return firstErr
}

// Advise passes an access-pattern hint for the whole mapping to the
// kernel. It never changes what Range returns.
func (f *File) Advise(advice Advice) error {
	if f.closed {
		return ErrClosed
	}
	if !f.sys.mapped {
		return nil
	}
	var flag int
	switch advice {
	case AdviceNormal:
		flag = unix.MADV_NORMAL
	case AdviceSequential:
		flag = unix.MADV_SEQUENTIAL
	case AdviceRandom:
		flag = unix.MADV_RANDOM
	case AdviceWillNeed:
		flag = unix.MADV_WILLNEED
	default:
		return fmt.Errorf("unknown advice %d", advice)
	}
	if err := unix.Madvise(f.data, flag); err != nil {
		return fmt.Errorf("madvise(%s) on %s: %w", advice, f.path, err)
	}
	return nil
}
