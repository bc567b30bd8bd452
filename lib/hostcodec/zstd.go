// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package hostcodec

import (
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// Encoders and the decoder are reused across calls to avoid repeated
// initialization overhead; both are safe for concurrent use, which is
// what the capability contract demands. One encoder is kept per
// distinct level actually requested.
var (
	zstdDecoder *zstd.Decoder

	zstdEncoderMu sync.Mutex
	zstdEncoders  = make(map[zstd.EncoderLevel]*zstd.Encoder)
)

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("hostcodec: zstd decoder initialization failed: " + err.Error())
	}
}

// zstdEncoderFor maps a codec-level to a shared encoder. Levels at or
// below zero select the default (zstd level 3).
func zstdEncoderFor(level int32) (*zstd.Encoder, error) {
	encLevel := zstd.SpeedDefault
	if level > 0 {
		encLevel = zstd.EncoderLevelFromZstd(int(level))
	}

	zstdEncoderMu.Lock()
	defer zstdEncoderMu.Unlock()
	if enc, ok := zstdEncoders[encLevel]; ok {
		return enc, nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encLevel))
	if err != nil {
		return nil, err
	}
	zstdEncoders[encLevel] = enc
	return enc, nil
}

func zstdBound(inLen uint32) uint32 {
	enc, err := zstdEncoderFor(0)
	if err != nil {
		// Bound must return something usable; fall back to the
		// frame-format worst case.
		return inLen + inLen>>8 + 256
	}
	return uint32(enc.MaxEncodedSize(int(inLen)))
}

func zstdCompress(in, out []byte, level int32) (uint32, codecabi.Status) {
	enc, err := zstdEncoderFor(level)
	if err != nil {
		return 0, codecabi.StatusInternal
	}

	// EncodeAll appends to the capacity-limited destination; if the
	// result outgrew it, the encoder allocated a fresh backing array
	// and the actual size is the exact minimum to report.
	result := enc.EncodeAll(in, out[:0:len(out)])
	if len(result) > len(out) {
		return uint32(len(result)), codecabi.StatusOverflow
	}
	copy(out, result)
	return uint32(len(result)), codecabi.StatusOK
}

func zstdDecompress(in, out []byte) (uint32, codecabi.Status) {
	result, err := zstdDecoder.DecodeAll(in, out[:0:len(out)])
	if err != nil {
		return 0, codecabi.StatusCorrupt
	}
	if len(result) > len(out) {
		return uint32(len(result)), codecabi.StatusOverflow
	}
	copy(out, result)
	return uint32(len(result)), codecabi.StatusOK
}
