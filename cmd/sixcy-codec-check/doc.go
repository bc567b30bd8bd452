// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// sixcy-codec-check inspects the codec registry of a sixcy host.
//
// It registers the built-in codecs, loads any configured plugins, and
// prints the resulting codec table. With --self-test each codec must
// round-trip a sample payload. With --write-inventory the registry
// snapshot is persisted; --verify-inventory compares a previously
// written snapshot against the current registry and exits nonzero on
// drift, which is how deployment scripts catch a codec silently
// disappearing between host upgrades.
package main
