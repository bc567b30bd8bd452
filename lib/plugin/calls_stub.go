// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(darwin || freebsd || linux)

package plugin

import (
	"runtime"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// OpenLibrary is unavailable on this platform; built-in codecs are
// the only codec source.
func OpenLibrary(path string) (Library, error) {
	return nil, &UnsupportedPlatformError{GOOS: runtime.GOOS}
}

// The stubs below are unreachable: OpenLibrary fails before any
// descriptor memory exists to decode or call into.

func callEntry(addr uintptr) uintptr { return 0 }

func compressCapability(fn uintptr) codecabi.CompressFunc { return nil }

func decompressCapability(fn uintptr) codecabi.DecompressFunc { return nil }

func boundCapability(fn uintptr) codecabi.BoundFunc { return nil }
