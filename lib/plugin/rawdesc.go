// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"encoding/binary"
	"unsafe"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// The plugin descriptor is byte-packed with frozen offsets:
//
//	offset  0  identity      16 bytes, LE RFC 4122 field order
//	offset 16  short_id      uint32 LE
//	offset 20  abi_version   uint32 LE
//	offset 24  fn_compress   function pointer
//	    +ptr   fn_decompress function pointer
//	   +2ptr   fn_compress_bound function pointer
//
// Fields are never reordered, only appended. The packed layout keeps
// the function pointers naturally aligned on every supported word
// size (24 is a multiple of both 4 and 8), so they can be read with a
// direct overlay.
const descriptorFixedSize = 24

// rawDescriptor holds the copied-out fields of a foreign descriptor.
// Function pointer fields are zero when the declared ABI version does
// not guarantee them.
type rawDescriptor struct {
	identity     codecabi.UUID
	shortID      uint32
	abiVersion   uint32
	fnCompress   uintptr
	fnDecompress uintptr
	fnBound      uintptr
}

// decodeDescriptor copies the descriptor fields out of foreign memory
// at addr. Only the fields guaranteed by the plugin's own declared
// ABI version are read; anything the plugin's version does not
// promise is never dereferenced. The host's compiled ABI version
// bounds the read in the other direction: fields appended by versions
// newer than [codecabi.HostABIVersion] are unknown to this code and
// ignored entirely.
func decodeDescriptor(addr uintptr) rawDescriptor {
	var raw rawDescriptor

	fixed := unsafe.Slice((*byte)(unsafe.Pointer(addr)), descriptorFixedSize)
	copy(raw.identity[:], fixed[:16])
	raw.shortID = binary.LittleEndian.Uint32(fixed[16:20])
	raw.abiVersion = binary.LittleEndian.Uint32(fixed[20:24])

	if raw.abiVersion >= 1 {
		fns := (*[3]uintptr)(unsafe.Pointer(addr + descriptorFixedSize))
		raw.fnCompress = fns[0]
		raw.fnDecompress = fns[1]
		raw.fnBound = fns[2]
	}
	return raw
}
