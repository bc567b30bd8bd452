// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package codecabi

import "fmt"

// HostABIVersion is the plugin ABI version this host was built
// against. A plugin declaring a higher version is rejected during
// negotiation; a plugin declaring a lower (but nonzero) version is
// always accepted, with only the fields its version guarantees read.
const HostABIVersion uint32 = 1

// EntrySymbol is the single exported symbol every codec plugin must
// provide. It takes no arguments and returns a pointer to a static
// descriptor; it must be idempotent and return the same address every
// call.
const EntrySymbol = "sixcy_codec_register"

// Status is a codec call return code. The values are frozen by the
// plugin ABI and shared by compress and decompress.
type Status int32

const (
	// StatusOK: success, the returned length is bytes written.
	StatusOK Status = 0

	// StatusOverflow: output buffer too small. The returned length is
	// the minimum required size when the codec can determine it;
	// otherwise it is left at the on-entry capacity.
	StatusOverflow Status = -1

	// StatusCorrupt: input data is corrupt or truncated.
	StatusCorrupt Status = -2

	// StatusInternal: codec-internal error (OOM, invalid level, etc.).
	StatusInternal Status = -3
)

// String returns the diagnostic name of a status code.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOverflow:
		return "overflow"
	case StatusCorrupt:
		return "corrupt"
	case StatusInternal:
		return "internal"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// CompressFunc is the compress capability. len(out) is the on-entry
// output capacity. On [StatusOK] the returned length is bytes written
// into out. On [StatusOverflow] it is the minimum required size when
// determinable, otherwise the unchanged capacity. The in and out
// regions must not overlap; the caller guarantees this.
//
// Must be safe to call concurrently from multiple goroutines with
// non-overlapping buffer pairs. level is codec-defined.
type CompressFunc func(in, out []byte, level int32) (uint32, Status)

// DecompressFunc is the decompress capability. Same capacity and
// return conventions as [CompressFunc], without a level.
type DecompressFunc func(in, out []byte) (uint32, Status)

// BoundFunc returns a guaranteed upper bound on compressed output
// size for inLen input bytes at any level. Must be pure: deterministic,
// no side effects, no I/O, safe from any goroutine at any time.
type BoundFunc func(inLen uint32) uint32

// Descriptor describes one accepted codec: its durable identity, its
// process-local advisory alias, the ABI version it was built against,
// and its three capabilities. Immutable once accepted into a registry;
// the ABI forbids shared mutable state inside a plugin, so nothing
// ever needs to change after acceptance.
type Descriptor struct {
	// Identity is the authoritative codec identity, written verbatim
	// into persisted block headers.
	Identity UUID

	// ShortID is an advisory in-process alias. 0 means unassigned.
	// Never persisted, never compared across process runs.
	ShortID uint32

	// ABIVersion is the plugin ABI version this descriptor's source
	// was built against.
	ABIVersion uint32

	// Compress, Decompress, and Bound are the codec capabilities.
	// All three are required as of ABI version 1.
	Compress   CompressFunc
	Decompress DecompressFunc
	Bound      BoundFunc
}
