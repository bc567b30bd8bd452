// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || freebsd || linux

package plugin

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// pad backs the non-null pointer requirement for empty buffers: the
// ABI promises every pointer parameter is non-null when a codec
// function is called, even when the corresponding length is zero.
var pad byte

func bytePointer(b []byte) *byte {
	if len(b) == 0 {
		return &pad
	}
	return &b[0]
}

// callEntry invokes the plugin entry point: no arguments, returns the
// address of the static descriptor.
func callEntry(addr uintptr) uintptr {
	r1, _, _ := purego.SyscallN(addr)
	return r1
}

// compressCapability wraps a raw fn_compress pointer. The wrapper is
// the only path from host code to the foreign call: it supplies the
// capacity through the in/out length parameter and guarantees non-null
// pointers. Buffer non-overlap is the dispatch engine's job: it
// always allocates the output independently of the input.
func compressCapability(fn uintptr) codecabi.CompressFunc {
	return func(in, out []byte, level int32) (uint32, codecabi.Status) {
		outLen := uint32(len(out))
		r1, _, _ := purego.SyscallN(fn,
			uintptr(unsafe.Pointer(bytePointer(in))),
			uintptr(uint32(len(in))),
			uintptr(unsafe.Pointer(bytePointer(out))),
			uintptr(unsafe.Pointer(&outLen)),
			uintptr(int64(level)),
		)
		runtime.KeepAlive(in)
		runtime.KeepAlive(out)
		return outLen, codecabi.Status(int32(r1))
	}
}

// decompressCapability wraps a raw fn_decompress pointer.
func decompressCapability(fn uintptr) codecabi.DecompressFunc {
	return func(in, out []byte) (uint32, codecabi.Status) {
		outLen := uint32(len(out))
		r1, _, _ := purego.SyscallN(fn,
			uintptr(unsafe.Pointer(bytePointer(in))),
			uintptr(uint32(len(in))),
			uintptr(unsafe.Pointer(bytePointer(out))),
			uintptr(unsafe.Pointer(&outLen)),
		)
		runtime.KeepAlive(in)
		runtime.KeepAlive(out)
		return outLen, codecabi.Status(int32(r1))
	}
}

// boundCapability wraps a raw fn_compress_bound pointer.
func boundCapability(fn uintptr) codecabi.BoundFunc {
	return func(inLen uint32) uint32 {
		r1, _, _ := purego.SyscallN(fn, uintptr(inLen))
		return uint32(r1)
	}
}
