// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for zcl.
//
// Configuration is loaded from a single file named either by the
// ZCL_CONFIG environment variable (via [Load]) or by a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Values from the file are merged over [Default], and unknown
// keys are rejected so a misspelled option fails loudly.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${ZCL_SHARD_DIR}, and ${VAR:-default} patterns are
// expanded. No environment variable overrides a config value directly.
//
// Key exports:
//
//   - [Config] -- shards, prefetch, and log settings
//   - [Default] -- a Config with every field set
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.ShardPaths] -- the resolved, ordered shard list
//
// This package depends only on lib/prefetch for mode validation.
package config
