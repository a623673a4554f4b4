// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mmapfile exposes a whole file as an immutable, bounds-checked
// byte view backed by a read-only shared memory mapping.
//
// [Open] maps the entire file PROT_READ/MAP_SHARED and keeps the file
// descriptor open for as long as the mapping lives. [File.Range] hands
// out sub-slices of the mapping directly: nothing is copied, and the
// slices are capacity-limited so an append by the caller reallocates
// instead of writing past the requested range. Every range is checked
// for uint64 overflow and against the mapped length before slicing;
// a bad range is an error wrapping [ErrOutOfBounds], never a truncated
// or wrapped view.
//
// Views are borrowed. They stay valid until [File.Close] unmaps the
// region, after which touching them faults. The package does not hand
// out the *File beyond its owner: lib/shard keeps each File private to
// the Reader that opened it, so closing the Reader is the only way a
// view can be invalidated.
//
// A file that is truncated on disk after it was mapped raises SIGBUS
// when the missing pages are touched. [Guard] runs a function with
// runtime.SetPanicOnFault enabled and converts such a fault into an
// error wrapping [ErrIO], so structural parsing of mapped bytes fails
// cleanly instead of crashing the process.
//
// On platforms without the unix mmap path (anything other than Linux
// and Darwin) Open reads the file into an owned buffer. The API and
// the bounds semantics are identical; only the zero-copy property is
// lost.
package mmapfile
