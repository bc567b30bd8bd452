// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package hostcodec

import (
	"github.com/klauspost/compress/s2"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// S2 block codec. Like LZ4, the level parameter is ignored; S2's
// single mode is already tuned for throughput.

func s2Bound(inLen uint32) uint32 {
	bound := s2.MaxEncodedLen(int(inLen))
	if bound < 0 {
		// Input larger than S2's block limit. The bound must stay
		// conservative; compress will reject the call instead.
		return ^uint32(0)
	}
	return uint32(bound)
}

func s2Compress(in, out []byte, level int32) (uint32, codecabi.Status) {
	bound := s2.MaxEncodedLen(len(in))
	if bound < 0 {
		return 0, codecabi.StatusInternal
	}
	if len(out) < bound {
		// s2.Encode needs the full worst-case destination. Compress
		// to scratch to learn whether the actual output fits, so the
		// overflow report carries an exact minimum.
		result := s2.Encode(nil, in)
		if len(result) > len(out) {
			return uint32(len(result)), codecabi.StatusOverflow
		}
		return uint32(copy(out, result)), codecabi.StatusOK
	}
	result := s2.Encode(out, in)
	return uint32(len(result)), codecabi.StatusOK
}

func s2Decompress(in, out []byte) (uint32, codecabi.Status) {
	decodedLen, err := s2.DecodedLen(in)
	if err != nil || decodedLen < 0 {
		return 0, codecabi.StatusCorrupt
	}
	if decodedLen > len(out) {
		return uint32(decodedLen), codecabi.StatusOverflow
	}
	result, err := s2.Decode(out[:decodedLen], in)
	if err != nil {
		return 0, codecabi.StatusCorrupt
	}
	return uint32(len(result)), codecabi.StatusOK
}
