// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package codecreg

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Together with the sorted
// snapshot order this makes the same codec set always produce
// identical inventory bytes, so drift detection can compare files.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown fields are ignored for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// Types implementing encoding.TextMarshaler (codecabi.UUID) encode
	// as text strings rather than opaque byte arrays, keeping inventory
	// files greppable.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codecreg: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codecreg: CBOR decoder initialization failed: " + err.Error())
	}
}

// InventoryEntry describes one registered codec in a snapshot.
type InventoryEntry struct {
	Identity   string `cbor:"identity"`
	ShortID    uint32 `cbor:"short_id"`
	ABIVersion uint32 `cbor:"abi_version"`
	Origin     string `cbor:"origin"`
}

// Inventory is a deterministic snapshot of a registry's codec set,
// sorted by raw identity bytes. Written by sixcy-codec-check so a
// later run can detect codec-set drift (a plugin that disappeared or
// changed) before any archive is opened.
type Inventory struct {
	Codecs []InventoryEntry `cbor:"codecs"`
}

// Snapshot returns the current codec set as an [Inventory].
func (r *Registry) Snapshot() Inventory {
	ids := r.Identities()

	r.mu.RLock()
	defer r.mu.RUnlock()

	inv := Inventory{Codecs: make([]InventoryEntry, 0, len(ids))}
	for _, id := range ids {
		e := r.byIdentity[id]
		inv.Codecs = append(inv.Codecs, InventoryEntry{
			Identity:   id.String(),
			ShortID:    e.desc.ShortID,
			ABIVersion: e.desc.ABIVersion,
			Origin:     e.origin,
		})
	}
	return inv
}

// EncodeInventory encodes an inventory to deterministic CBOR.
func EncodeInventory(inv Inventory) ([]byte, error) {
	data, err := encMode.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("encoding codec inventory: %w", err)
	}
	return data, nil
}

// DecodeInventory decodes a CBOR inventory file.
func DecodeInventory(data []byte) (Inventory, error) {
	var inv Inventory
	if err := decMode.Unmarshal(data, &inv); err != nil {
		return Inventory{}, fmt.Errorf("decoding codec inventory: %w", err)
	}
	return inv, nil
}

// Diff compares a recorded inventory against the current one and
// returns one human-readable line per difference: codecs that
// disappeared, appeared, or changed ABI version. Short IDs and
// origins are process-local and deliberately not compared. An empty
// result means the codec sets match.
func (recorded Inventory) Diff(current Inventory) []string {
	recordedByID := make(map[string]InventoryEntry, len(recorded.Codecs))
	for _, e := range recorded.Codecs {
		recordedByID[e.Identity] = e
	}
	currentByID := make(map[string]InventoryEntry, len(current.Codecs))
	for _, e := range current.Codecs {
		currentByID[e.Identity] = e
	}

	var diffs []string
	for _, e := range recorded.Codecs {
		now, ok := currentByID[e.Identity]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("codec %s missing (was %s)", e.Identity, e.Origin))
			continue
		}
		if now.ABIVersion != e.ABIVersion {
			diffs = append(diffs, fmt.Sprintf("codec %s ABI version changed: %d -> %d",
				e.Identity, e.ABIVersion, now.ABIVersion))
		}
	}
	for _, e := range current.Codecs {
		if _, ok := recordedByID[e.Identity]; !ok {
			diffs = append(diffs, fmt.Sprintf("codec %s is new (%s)", e.Identity, e.Origin))
		}
	}
	return diffs
}
