// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package hostcodec

import (
	"fmt"

	"github.com/sixcy-format/sixcy/lib/codecabi"
	"github.com/sixcy-format/sixcy/lib/codecreg"
)

// Frozen codec UUIDs. These values are permanent: they appear in
// block headers on disk and in superblock required-codec lists, and
// are never reused.
var (
	// UUIDNone: no compression, payload stored verbatim.
	UUIDNone = codecabi.UUID{}

	// UUIDZstd: Zstandard, balanced speed/ratio (default).
	UUIDZstd = codecabi.MustParseUUID("b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f")

	// UUIDLZ4: LZ4 block compression, maximum throughput.
	UUIDLZ4 = codecabi.MustParseUUID("3f7b2c8e-1a4d-4e9f-b6c3-5d8a2f7e0b1c")

	// UUIDS2: S2 (Snappy-compatible superset), high-throughput
	// alternative with a cheap exact bound.
	UUIDS2 = codecabi.MustParseUUID("7d4e9a2b-3c6f-4b1d-9e8a-1f5c7b3d0a4e")
)

// Advisory short IDs for the built-in codecs. In-process only, never
// written to disk. "none" deliberately has no short ID: the zero
// value means unassigned.
const (
	shortZstd uint32 = 1
	shortLZ4  uint32 = 2
	shortS2   uint32 = 3
)

// Name returns the human-readable name of a built-in codec identity,
// for diagnostics only, never parsed or persisted. ok is false
// for identities that are not built in.
func Name(identity codecabi.UUID) (string, bool) {
	switch identity {
	case UUIDNone:
		return "none", true
	case UUIDZstd:
		return "zstd", true
	case UUIDLZ4:
		return "lz4", true
	case UUIDS2:
		return "s2", true
	default:
		return "", false
	}
}

// Descriptors returns fresh descriptors for all built-in codecs.
func Descriptors() []*codecabi.Descriptor {
	return []*codecabi.Descriptor{
		{
			Identity:   UUIDNone,
			ABIVersion: codecabi.HostABIVersion,
			Compress:   noneCompress,
			Decompress: noneDecompress,
			Bound:      noneBound,
		},
		{
			Identity:   UUIDZstd,
			ShortID:    shortZstd,
			ABIVersion: codecabi.HostABIVersion,
			Compress:   zstdCompress,
			Decompress: zstdDecompress,
			Bound:      zstdBound,
		},
		{
			Identity:   UUIDLZ4,
			ShortID:    shortLZ4,
			ABIVersion: codecabi.HostABIVersion,
			Compress:   lz4Compress,
			Decompress: lz4Decompress,
			Bound:      lz4Bound,
		},
		{
			Identity:   UUIDS2,
			ShortID:    shortS2,
			ABIVersion: codecabi.HostABIVersion,
			Compress:   s2Compress,
			Decompress: s2Decompress,
			Bound:      s2Bound,
		},
	}
}

// Register registers all built-in codecs with the registry under the
// origin "builtin".
func Register(reg *codecreg.Registry) error {
	for _, desc := range Descriptors() {
		if err := reg.Register(desc, "builtin"); err != nil {
			name, _ := Name(desc.Identity)
			return fmt.Errorf("registering builtin codec %s: %w", name, err)
		}
	}
	return nil
}
