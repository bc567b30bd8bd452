// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package dispatch implements the call-site protocol for block
// compress and decompress operations.
//
// For every call the engine resolves the codec by its durable
// identity, pre-computes the output bound, allocates a fresh output
// buffer (never aliasing the input; the ABI forbids overlapping
// regions), and invokes the codec capability. Compression recovers
// from overflow locally: a codec that reports a usable minimum size
// gets exactly one retry at that size, one that reports nothing gets
// a bounded number of buffer doublings before the overflow surfaces.
// Decompression never retries: its buffer is sized from the block
// header's recorded original size, the only trustworthy size, so an
// overflow there means the persisted metadata and the codec disagree
// and the data is treated as corrupt.
//
// Codec calls are synchronous, CPU-bound, and non-cancellable: there
// is no cooperative yield point inside a foreign call, so the only
// cancellation granularity is "do not invoke". The engine holds no
// per-call state; concurrent calls on disjoint buffers are safe per
// the ABI contract.
//
// The bound pre-computation is optionally cached per (identity, input
// length): the ABI requires fn_compress_bound to be pure, so caching
// is sound, and pinning the first observed value keeps dispatch
// deterministic even against a plugin whose bound function drifts.
package dispatch
