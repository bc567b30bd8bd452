// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package codecabi defines the frozen binary contract between the .6cy
// host and third-party codec plugins.
//
// A codec plugin is a shared library exporting a single entry symbol
// that returns a static, byte-packed descriptor: a 16-byte codec UUID,
// an advisory short ID, the ABI version the plugin was compiled
// against, and three function pointers (compress, decompress,
// compress-bound). This package models that contract on the host side:
//
//   - [UUID] -- the durable codec identity, 16 raw bytes in
//     little-endian RFC 4122 field order, matched byte-for-byte against
//     block headers on disk. Never normalized, never case-folded.
//   - [Status] -- the four return codes shared by every codec call.
//   - [CompressFunc], [DecompressFunc], [BoundFunc] -- capability
//     handles wrapping the raw function pointers (or in-process Go
//     implementations; the contract is identical either way).
//   - [Descriptor] -- the immutable value built from a plugin's
//     descriptor struct. Once accepted into a registry it is never
//     mutated for the life of the process.
//   - [Negotiate] -- ABI version validation. A plugin compiled against
//     ABI version N is compatible with any host version >= N; a plugin
//     newer than the host is rejected.
//
// The ABI is append-only: field offsets, function signatures, and
// return code values are frozen forever. New capabilities are appended
// at the end of the descriptor and gated on the declared ABI version,
// so fields beyond what a plugin's version guarantees are never read.
//
// This package is pure data and validation. Loading libraries lives in
// lib/plugin; identity resolution in lib/codecreg; call dispatch in
// lib/dispatch. This package depends on no other sixcy packages.
package codecabi
