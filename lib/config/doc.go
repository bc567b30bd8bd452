// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for sixcy hosts.
//
// Configuration is loaded from a single file specified by either the
// SIXCY_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. This ensures deterministic, auditable
// configuration with no hidden overrides.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- plugin directories, required codecs, defaults
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends only on lib/codecabi for identity parsing.
package config
