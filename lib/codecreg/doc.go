// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package codecreg maintains the process-wide table of accepted codec
// descriptors.
//
// The registry maps durable 16-byte codec identities to descriptors
// (the only lookup permitted when persisted block data is read or
// written) and, secondarily, nonzero advisory short IDs to the same
// descriptors for in-process fast dispatch. Short IDs are never the
// sole means of identifying a codec for persisted data: a short-id
// collision silently costs the later codec its fast path and nothing
// else, while a duplicate identity is a hard registration error.
//
// The table is built under a write lock during startup plugin
// discovery and is effectively read-only afterwards; there is no
// removal operation, because a registered descriptor holds live
// function pointers into a mapped library that is never unloaded.
//
// [Registry.VerifyRequired] checks an archive's declared codec list
// against the table before any block is touched, reporting every
// missing identity so an operator can tell a missing plugin apart
// from corruption. [Registry.Snapshot] produces a deterministic
// inventory of the accepted codecs; see inventory.go for the CBOR
// encoding used by the sixcy-codec-check drift detection.
package codecreg
