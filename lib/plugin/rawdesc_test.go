// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"encoding/binary"
	"runtime"
	"testing"
	"unsafe"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// packDescriptor builds a packed descriptor image in aligned Go
// memory, mimicking the static struct a plugin's entry point returns.
// The returned backing slice must be kept alive for as long as the
// address is used.
func packDescriptor(identity codecabi.UUID, shortID, abiVersion uint32, fns [3]uintptr) ([]uint64, uintptr) {
	// 6 words cover the 24 fixed bytes plus three pointers on any
	// supported word size, with 8-byte alignment guaranteed.
	backing := make([]uint64, 6)
	base := uintptr(unsafe.Pointer(&backing[0]))

	fixed := unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), descriptorFixedSize)
	copy(fixed[:16], identity[:])
	binary.LittleEndian.PutUint32(fixed[16:20], shortID)
	binary.LittleEndian.PutUint32(fixed[20:24], abiVersion)

	*(*[3]uintptr)(unsafe.Pointer(base + descriptorFixedSize)) = fns

	return backing, base
}

func TestDecodeDescriptor(t *testing.T) {
	identity := codecabi.MustParseUUID("00112233-4455-6677-8899-aabbccddeeff")
	fns := [3]uintptr{0x1000, 0x2000, 0x3000}

	backing, addr := packDescriptor(identity, 42, 1, fns)
	raw := decodeDescriptor(addr)
	runtime.KeepAlive(backing)

	if raw.identity != identity {
		t.Errorf("identity = %s, want %s", raw.identity, identity)
	}
	if raw.shortID != 42 {
		t.Errorf("shortID = %d, want 42", raw.shortID)
	}
	if raw.abiVersion != 1 {
		t.Errorf("abiVersion = %d, want 1", raw.abiVersion)
	}
	if raw.fnCompress != 0x1000 || raw.fnDecompress != 0x2000 || raw.fnBound != 0x3000 {
		t.Errorf("function pointers = %#x/%#x/%#x, want 0x1000/0x2000/0x3000",
			raw.fnCompress, raw.fnDecompress, raw.fnBound)
	}
}

func TestDecodeDescriptorVersionZeroReadsNoCapabilities(t *testing.T) {
	// A declared version of 0 guarantees no fields beyond the fixed
	// header; the pointers present in memory must not be read.
	backing, addr := packDescriptor(codecabi.UUID{}, 0, 0, [3]uintptr{0x1000, 0x2000, 0x3000})
	raw := decodeDescriptor(addr)
	runtime.KeepAlive(backing)

	if raw.fnCompress != 0 || raw.fnDecompress != 0 || raw.fnBound != 0 {
		t.Error("version 0 descriptor must decode with no capabilities")
	}
}

func TestDecodeDescriptorNewerVersionReadsKnownFields(t *testing.T) {
	// A plugin declaring a newer version than the host understands
	// still decodes cleanly: the host reads only the fields its own
	// compiled version knows about. Negotiation rejects it later.
	identity := codecabi.MustParseUUID("b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f")
	backing, addr := packDescriptor(identity, 3, codecabi.HostABIVersion+1, [3]uintptr{4, 5, 6})
	raw := decodeDescriptor(addr)
	runtime.KeepAlive(backing)

	if raw.identity != identity || raw.abiVersion != codecabi.HostABIVersion+1 {
		t.Error("fixed fields should decode regardless of declared version")
	}
	if raw.fnCompress != 4 || raw.fnDecompress != 5 || raw.fnBound != 6 {
		t.Error("v1 capabilities should decode for any version >= 1")
	}
}
