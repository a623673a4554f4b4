// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the zcl binary.
//
// Three package-level variables can be injected at build time with
// -ldflags -X: [Version], [GitCommit], and [BuildTime]. When the
// commit is not injected, [Info] falls back to the vcs.revision and
// vcs.modified settings the Go toolchain records in the binary, so a
// plain `go build` from a checkout still reports where it came from.
package version
