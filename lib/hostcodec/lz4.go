// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package hostcodec

import (
	"github.com/pierrec/lz4/v4"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// LZ4 block-mode codec. The level parameter is ignored: LZ4's fast
// path is the point of choosing it.

func lz4Bound(inLen uint32) uint32 {
	return uint32(lz4.CompressBlockBound(int(inLen)))
}

func lz4Compress(in, out []byte, level int32) (uint32, codecabi.Status) {
	bound := lz4.CompressBlockBound(len(in))
	if len(out) < bound {
		return uint32(bound), codecabi.StatusOverflow
	}

	written, err := lz4.CompressBlock(in, out, nil)
	if err != nil {
		return 0, codecabi.StatusInternal
	}
	if written == 0 {
		// CompressBlock reports incompressible data by writing
		// nothing. Emit a literal-only block instead so the output
		// is always a valid LZ4 block and round-trips.
		return lz4LiteralBlock(in, out)
	}
	return uint32(written), codecabi.StatusOK
}

func lz4Decompress(in, out []byte) (uint32, codecabi.Status) {
	read, err := lz4.UncompressBlock(in, out)
	if err != nil {
		// UncompressBlock does not distinguish a truncated source
		// from a short destination; with the destination sized from
		// the block header, either way the persisted data is wrong.
		return 0, codecabi.StatusCorrupt
	}
	return uint32(read), codecabi.StatusOK
}

// lz4LiteralBlock writes in as a single literal-only LZ4 sequence:
// a token with literal length 15, length extension bytes in 255-steps,
// then the raw bytes. Valid per the LZ4 block format, which allows
// the final sequence to carry literals only. The caller has already
// checked that out holds CompressBlockBound(len(in)) bytes, which
// covers the worst case here (1 + len/255 + 1 + len).
func lz4LiteralBlock(in, out []byte) (uint32, codecabi.Status) {
	pos := 0
	length := len(in)
	if length < 15 {
		out[pos] = byte(length) << 4
		pos++
	} else {
		out[pos] = 0xF0
		pos++
		for remaining := length - 15; ; remaining -= 255 {
			if remaining < 255 {
				out[pos] = byte(remaining)
				pos++
				break
			}
			out[pos] = 255
			pos++
		}
	}
	pos += copy(out[pos:], in)
	return uint32(pos), codecabi.StatusOK
}
