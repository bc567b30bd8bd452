// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostcodec provides the codecs compiled into the host
// itself: none, lz4, zstd, and s2.
//
// Built-in codecs implement exactly the same capability contract as
// loaded plugins (capacity-tagged output buffers, overflow reporting
// with a minimum size when determinable, status codes) and register
// through the same [codecreg.Registry]. The dispatch engine cannot
// tell them apart from foreign code, which keeps the call protocol
// honest and gives every archive a usable baseline codec set without
// any plugin on disk.
//
// Codec identities are frozen UUIDs. A UUID is never reused, even if
// a codec is deprecated. The zero UUID is "none" (payload stored
// verbatim).
package hostcodec
