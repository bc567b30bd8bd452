// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package hostcodec

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/sixcy-format/sixcy/lib/codecabi"
	"github.com/sixcy-format/sixcy/lib/codecreg"
)

// sampleInputs covers the shapes that exercise codec edge cases:
// empty, tiny, compressible, and incompressible data.
func sampleInputs(t *testing.T) map[string][]byte {
	t.Helper()

	random := make([]byte, 8192)
	if _, err := rand.Read(random); err != nil {
		t.Fatalf("generating random input: %v", err)
	}

	return map[string][]byte{
		"empty":          {},
		"single byte":    {0x42},
		"short text":     []byte("hello, block"),
		"repetitive":     bytes.Repeat([]byte("sixcy block payload "), 512),
		"incompressible": random,
	}
}

func TestRoundTripAllCodecs(t *testing.T) {
	for _, desc := range Descriptors() {
		name, _ := Name(desc.Identity)
		t.Run(name, func(t *testing.T) {
			for inputName, input := range sampleInputs(t) {
				for _, level := range []int32{0, 1, 3, 9} {
					out := make([]byte, desc.Bound(uint32(len(input))))
					written, rc := desc.Compress(input, out, level)
					if rc != codecabi.StatusOK {
						t.Fatalf("%s level %d: compress returned %v", inputName, level, rc)
					}

					plain := make([]byte, len(input))
					read, rc := desc.Decompress(out[:written], plain)
					if rc != codecabi.StatusOK {
						t.Fatalf("%s level %d: decompress returned %v", inputName, level, rc)
					}
					if int(read) != len(input) {
						t.Fatalf("%s level %d: decompressed %d bytes, want %d",
							inputName, level, read, len(input))
					}
					if !bytes.Equal(plain[:read], input) {
						t.Errorf("%s level %d: round trip mismatch", inputName, level)
					}
				}
			}
		})
	}
}

func TestBoundNeverViolated(t *testing.T) {
	for _, desc := range Descriptors() {
		name, _ := Name(desc.Identity)
		t.Run(name, func(t *testing.T) {
			for inputName, input := range sampleInputs(t) {
				bound := desc.Bound(uint32(len(input)))
				out := make([]byte, bound)
				written, rc := desc.Compress(input, out, 3)
				if rc != codecabi.StatusOK {
					t.Fatalf("%s: compress returned %v", inputName, rc)
				}
				if written > bound {
					t.Errorf("%s: wrote %d bytes, declared bound %d", inputName, written, bound)
				}
			}
		})
	}
}

func TestCompressOverflowReportsMinimum(t *testing.T) {
	input := bytes.Repeat([]byte("overflow probe "), 256)

	for _, desc := range Descriptors() {
		name, _ := Name(desc.Identity)
		t.Run(name, func(t *testing.T) {
			// A 2-byte destination is always too small for this input.
			tiny := make([]byte, 2)
			reported, rc := desc.Compress(input, tiny, 3)
			if rc != codecabi.StatusOverflow {
				t.Fatalf("compress into 2 bytes returned %v, want overflow", rc)
			}
			if reported <= uint32(len(tiny)) {
				t.Fatalf("overflow reported %d, not a usable minimum", reported)
			}

			// Retrying with the reported minimum must succeed.
			out := make([]byte, reported)
			written, rc := desc.Compress(input, out, 3)
			if rc != codecabi.StatusOK {
				t.Fatalf("retry with reported minimum returned %v", rc)
			}

			plain := make([]byte, len(input))
			read, rc := desc.Decompress(out[:written], plain)
			if rc != codecabi.StatusOK || !bytes.Equal(plain[:read], input) {
				t.Error("retry output failed to round trip")
			}
		})
	}
}

func TestDecompressShortOutput(t *testing.T) {
	input := bytes.Repeat([]byte("abcd"), 64)

	for _, desc := range Descriptors() {
		name, _ := Name(desc.Identity)
		t.Run(name, func(t *testing.T) {
			out := make([]byte, desc.Bound(uint32(len(input))))
			written, rc := desc.Compress(input, out, 3)
			if rc != codecabi.StatusOK {
				t.Fatalf("compress returned %v", rc)
			}

			short := make([]byte, len(input)/2)
			_, rc = desc.Decompress(out[:written], short)
			if rc != codecabi.StatusOverflow && rc != codecabi.StatusCorrupt {
				t.Errorf("decompress into short buffer returned %v, want overflow or corrupt", rc)
			}
		})
	}
}

func TestDecompressCorruptInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}

	t.Run("zstd", func(t *testing.T) {
		desc := descriptorFor(t, UUIDZstd)
		out := make([]byte, 1024)
		_, rc := desc.Decompress(garbage, out)
		if rc != codecabi.StatusCorrupt {
			t.Errorf("decompress of garbage returned %v, want corrupt", rc)
		}
	})

	t.Run("s2", func(t *testing.T) {
		// Garbage can masquerade as a huge length prefix, which S2
		// reports as overflow rather than corruption; the dispatch
		// engine maps either to a data inconsistency.
		desc := descriptorFor(t, UUIDS2)
		out := make([]byte, 1024)
		_, rc := desc.Decompress(garbage, out)
		if rc == codecabi.StatusOK {
			t.Error("decompress of garbage should not succeed")
		}
	})
}

func TestLZ4LiteralFallbackRoundTrip(t *testing.T) {
	// Random data defeats LZ4 matching, forcing the literal-only
	// block path.
	input := make([]byte, 300)
	if _, err := rand.Read(input); err != nil {
		t.Fatalf("generating input: %v", err)
	}

	desc := descriptorFor(t, UUIDLZ4)
	out := make([]byte, desc.Bound(uint32(len(input))))
	written, rc := desc.Compress(input, out, 0)
	if rc != codecabi.StatusOK {
		t.Fatalf("compress returned %v", rc)
	}

	plain := make([]byte, len(input))
	read, rc := desc.Decompress(out[:written], plain)
	if rc != codecabi.StatusOK {
		t.Fatalf("decompress returned %v", rc)
	}
	if !bytes.Equal(plain[:read], input) {
		t.Error("literal-only block did not round trip")
	}
}

func TestRegisterAll(t *testing.T) {
	reg := codecreg.New()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Len() != 4 {
		t.Errorf("registered %d codecs, want 4", reg.Len())
	}
	for _, identity := range []codecabi.UUID{UUIDNone, UUIDZstd, UUIDLZ4, UUIDS2} {
		if _, ok := reg.ResolveIdentity(identity); !ok {
			name, _ := Name(identity)
			t.Errorf("builtin codec %s should resolve by identity", name)
		}
	}

	// Registering twice must fail on the first duplicate identity.
	if err := Register(reg); err == nil {
		t.Error("second Register should fail with a duplicate identity")
	}
}

func TestFrozenIdentities(t *testing.T) {
	// These renderings are part of the on-disk contract. If this test
	// fails, stored archives have silently changed meaning.
	tests := []struct {
		identity codecabi.UUID
		want     string
	}{
		{UUIDNone, "00000000-0000-0000-0000-000000000000"},
		{UUIDZstd, "b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f"},
		{UUIDLZ4, "3f7b2c8e-1a4d-4e9f-b6c3-5d8a2f7e0b1c"},
		{UUIDS2, "7d4e9a2b-3c6f-4b1d-9e8a-1f5c7b3d0a4e"},
	}
	for _, tt := range tests {
		if got := tt.identity.String(); got != tt.want {
			t.Errorf("identity = %s, want %s", got, tt.want)
		}
	}
}

func descriptorFor(t *testing.T, identity codecabi.UUID) *codecabi.Descriptor {
	t.Helper()
	for _, desc := range Descriptors() {
		if desc.Identity == identity {
			return desc
		}
	}
	t.Fatalf("no builtin descriptor for %s", identity)
	return nil
}
