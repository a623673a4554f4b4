// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package typedview decodes sample bytes into slices of fixed-width
// numbers.
//
// Sample bytes are stored little-endian. Every function decodes into a
// freshly allocated slice, so the result owns its memory and outlives
// the shard mapping. The input carries no alignment requirement. A
// byte length that is not a multiple of the element size fails with
// [ErrLength].
package typedview
