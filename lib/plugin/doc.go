// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package plugin loads codec plugin shared libraries and turns their
// packed descriptors into accepted registry entries.
//
// The load flow for one library: open it, resolve the single required
// entry symbol, call the entry point (no arguments, returns a pointer
// to a static descriptor), copy out the fixed-size fields the host's
// compiled ABI version understands, wrap the raw function pointers as
// capability handles, and hand the result to ABI negotiation. A
// rejected library is closed immediately; an accepted one stays
// mapped for the life of the process, because the registry now holds
// live function pointers into it.
//
// The dynamic-loading primitive itself is a capability: the [Library]
// interface is "resolve a symbol, close". The production
// implementation uses purego's dlopen/dlsym/dlclose, so no cgo is
// involved; tests substitute an in-memory fake.
//
// Plugin code is foreign and untrusted. Everything the host can check
// is checked before the first codec call (ABI version, capability
// presence, entry idempotence when consistency checks are enabled),
// but a plugin that crashes takes the process with it. The contract
// provides no fault isolation.
//
// Load failures are fatal to that plugin's registration only:
// [Loader.LoadDir] logs a warning and continues with the remaining
// plugins.
package plugin
