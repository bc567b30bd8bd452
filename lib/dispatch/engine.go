// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/sixcy-format/sixcy/lib/codecabi"
	"github.com/sixcy-format/sixcy/lib/codecreg"
)

const (
	// defaultMaxDoublings bounds the blind retry path: when a codec
	// reports overflow without a usable minimum size, the output
	// buffer is doubled at most this many times before the overflow
	// surfaces to the caller.
	defaultMaxDoublings = 4

	// boundCacheSize is the number of (identity, input length) pairs
	// whose compress bound is remembered.
	boundCacheSize = 4096
)

type boundKey struct {
	identity codecabi.UUID
	inLen    uint32
}

// Engine dispatches block compress/decompress operations against a
// codec registry. Safe for concurrent use: every call operates only
// on buffers it allocated itself.
type Engine struct {
	registry     *codecreg.Registry
	maxDoublings int
	bounds       *lru.Cache[boundKey, uint32]
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDoublings overrides the blind overflow retry budget.
func WithMaxDoublings(n int) Option {
	return func(e *Engine) { e.maxDoublings = n }
}

// WithoutBoundCache disables the per-(identity, length) bound cache;
// every compress call then invokes the codec's bound function
// directly.
func WithoutBoundCache() Option {
	return func(e *Engine) { e.bounds = nil }
}

// New returns an engine dispatching against registry.
func New(registry *codecreg.Registry, opts ...Option) *Engine {
	cache, err := lru.New[boundKey, uint32](boundCacheSize)
	if err != nil {
		panic("dispatch: bound cache initialization failed: " + err.Error())
	}
	e := &Engine{
		registry:     registry,
		maxDoublings: defaultMaxDoublings,
		bounds:       cache,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bound returns the codec's declared upper bound on compressed output
// size for inLen input bytes. The result is a hard ceiling: compress
// is never handed a smaller buffer. fn_compress_bound is pure by
// contract, so the first observed value per (identity, inLen) may be
// served from cache.
func (e *Engine) Bound(desc *codecabi.Descriptor, inLen int) int {
	if e.bounds == nil {
		return int(desc.Bound(uint32(inLen)))
	}
	key := boundKey{identity: desc.Identity, inLen: uint32(inLen)}
	if bound, ok := e.bounds.Get(key); ok {
		return int(bound)
	}
	bound := desc.Bound(uint32(inLen))
	e.bounds.Add(key, bound)
	return int(bound)
}

// Compress resolves identity and compresses data at the given level.
// The identity lookup is the durable, on-disk-facing resolution; use
// [Engine.CompressDescriptor] only to re-dispatch on a descriptor
// already resolved in this run.
func (e *Engine) Compress(identity codecabi.UUID, data []byte, level int32) ([]byte, error) {
	desc, ok := e.registry.ResolveIdentity(identity)
	if !ok {
		return nil, &UnknownCodecError{Identity: identity}
	}
	return e.CompressDescriptor(desc, data, level)
}

// CompressDescriptor compresses data with an already-resolved codec.
//
// The output buffer starts at the codec's declared bound and is grown
// on overflow: once, exactly, when the codec reports a usable minimum
// size; otherwise by doubling within the retry budget. Corrupt and
// internal statuses surface immediately and are never retried.
func (e *Engine) CompressDescriptor(desc *codecabi.Descriptor, data []byte, level int32) ([]byte, error) {
	capacity := e.Bound(desc, len(data))

	attempts := 0
	doublings := 0
	usedReportedMinimum := false
	for {
		// A fresh allocation per attempt guarantees the output never
		// overlaps the input.
		out := make([]byte, capacity)
		written, status := desc.Compress(data, out, level)
		attempts++

		switch status {
		case codecabi.StatusOK:
			// The written length comes from foreign code; trusting it
			// unchecked would let a broken plugin crash the host on
			// the slice below.
			if int(written) > len(out) {
				return nil, &InternalError{
					Identity: desc.Identity,
					Op:       "compress",
					Status:   status,
					Detail: fmt.Sprintf("reported %d bytes written into a %d byte buffer",
						written, len(out)),
				}
			}
			return out[:written:written], nil

		case codecabi.StatusOverflow:
			if int(written) > capacity && !usedReportedMinimum {
				// The codec reported a precise minimum: retry at
				// exactly that size, once.
				capacity = int(written)
				usedReportedMinimum = true
				continue
			}
			if doublings >= e.maxDoublings {
				return nil, &OverflowError{Identity: desc.Identity, Attempts: attempts}
			}
			doublings++
			if capacity >= math.MaxUint32/2 {
				capacity = math.MaxUint32
			} else if capacity == 0 {
				capacity = 1
			} else {
				capacity *= 2
			}

		case codecabi.StatusCorrupt:
			return nil, &CorruptError{Identity: desc.Identity, Op: "compress", Detail: "codec reported corrupt input"}

		default:
			return nil, &InternalError{Identity: desc.Identity, Op: "compress", Status: status}
		}
	}
}

// Decompress resolves identity and decompresses data into a buffer of
// exactly origSize bytes. origSize comes from the persisted block
// header; the size recorded at compression time is the only
// trustworthy size for decompression, so the codec gets no say:
// an overflow means the header and the codec disagree, and the block
// is treated as corrupt rather than retried.
func (e *Engine) Decompress(identity codecabi.UUID, data []byte, origSize int) ([]byte, error) {
	desc, ok := e.registry.ResolveIdentity(identity)
	if !ok {
		return nil, &UnknownCodecError{Identity: identity}
	}
	return e.DecompressDescriptor(desc, data, origSize)
}

// DecompressDescriptor decompresses with an already-resolved codec.
// See [Engine.Decompress] for the sizing contract.
func (e *Engine) DecompressDescriptor(desc *codecabi.Descriptor, data []byte, origSize int) ([]byte, error) {
	out := make([]byte, origSize)
	written, status := desc.Decompress(data, out)

	switch status {
	case codecabi.StatusOK:
		if int(written) != origSize {
			return nil, &CorruptError{
				Identity: desc.Identity,
				Op:       "decompress",
				Detail: fmt.Sprintf("codec wrote %d bytes, block header records %d",
					written, origSize),
			}
		}
		return out, nil

	case codecabi.StatusOverflow:
		return nil, &CorruptError{
			Identity: desc.Identity,
			Op:       "decompress",
			Detail:   "output exceeds the size recorded in the block header",
		}

	case codecabi.StatusCorrupt:
		return nil, &CorruptError{Identity: desc.Identity, Op: "decompress", Detail: "codec reported corrupt input"}

	default:
		return nil, &InternalError{Identity: desc.Identity, Op: "decompress", Status: status}
	}
}

// DecompressVerified decompresses a block and verifies the BLAKE3
// hash of the plaintext against the content hash recorded in the
// block header. A mismatch is corruption: the payload decompressed
// cleanly but is not the data that was stored.
func (e *Engine) DecompressVerified(identity codecabi.UUID, data []byte, origSize int, contentHash [32]byte) ([]byte, error) {
	plain, err := e.Decompress(identity, data, origSize)
	if err != nil {
		return nil, err
	}
	if blake3.Sum256(plain) != contentHash {
		return nil, &CorruptError{
			Identity: identity,
			Op:       "decompress",
			Detail:   "content hash mismatch after decompression",
		}
	}
	return plain, nil
}

// ContentHash returns the BLAKE3 hash of plaintext data, as recorded
// in block headers at compression time and checked by
// [Engine.DecompressVerified].
func ContentHash(data []byte) [32]byte {
	return blake3.Sum256(data)
}
