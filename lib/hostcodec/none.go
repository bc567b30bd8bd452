// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package hostcodec

import "github.com/sixcy-format/sixcy/lib/codecabi"

// The "none" codec stores the payload verbatim. It exists so that
// incompressible blocks carry a real codec identity instead of a
// special case in the block format.

func noneBound(inLen uint32) uint32 {
	return inLen
}

func noneCompress(in, out []byte, level int32) (uint32, codecabi.Status) {
	if len(out) < len(in) {
		return uint32(len(in)), codecabi.StatusOverflow
	}
	return uint32(copy(out, in)), codecabi.StatusOK
}

func noneDecompress(in, out []byte) (uint32, codecabi.Status) {
	if len(out) < len(in) {
		return uint32(len(in)), codecabi.StatusOverflow
	}
	return uint32(copy(out, in)), codecabi.StatusOK
}
