// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package codecabi

import (
	"fmt"

	googleuuid "github.com/google/uuid"
)

// UUIDLen is the byte length of a codec UUID in little-endian field
// order. Frozen by the plugin ABI.
const UUIDLen = 16

// UUID is a codec identity: 16 raw bytes in little-endian RFC 4122
// field order, exactly as written into block headers on disk and into
// plugin descriptors. It is binary, not textual: two identities are
// equal iff all 16 bytes match. No byte-swapping is ever performed on
// the stored form; the canonical hyphenated rendering is produced only
// for diagnostics and configuration.
type UUID [UUIDLen]byte

// IsZero reports whether the identity is all zero bytes. The zero
// identity is reserved for the built-in "none" codec.
func (u UUID) IsZero() bool {
	return u == UUID{}
}

// String renders the canonical hyphenated form
// (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx) by undoing the little-endian
// field order: time_low (4 bytes), time_mid (2), time_hi (2) are
// stored byte-reversed; clock_seq and node are stored as-is.
func (u UUID) String() string {
	return fmt.Sprintf(
		"%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		u[3], u[2], u[1], u[0],
		u[5], u[4],
		u[7], u[6],
		u[8], u[9],
		u[10], u[11], u[12], u[13], u[14], u[15],
	)
}

// MarshalText implements encoding.TextMarshaler, rendering the
// canonical hyphenated form.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the
// canonical hyphenated form.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := ParseUUID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUUID parses a canonical hyphenated UUID string into its
// little-endian field order byte form. The inverse of [UUID.String].
func ParseUUID(s string) (UUID, error) {
	canonical, err := googleuuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("parsing codec UUID %q: %w", s, err)
	}

	// googleuuid stores the big-endian (display order) bytes. Reverse
	// the first three fields to get the on-disk little-endian order.
	var u UUID
	u[0], u[1], u[2], u[3] = canonical[3], canonical[2], canonical[1], canonical[0]
	u[4], u[5] = canonical[5], canonical[4]
	u[6], u[7] = canonical[7], canonical[6]
	copy(u[8:], canonical[8:])
	return u, nil
}

// MustParseUUID is ParseUUID for frozen compile-time constants. Panics
// on malformed input.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic("codecabi: " + err.Error())
	}
	return u
}
