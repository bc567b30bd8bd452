// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package codecabi

import "fmt"

// ABITooNewError reports a plugin built against a newer ABI version
// than the host understands. The plugin cannot be used; a newer host
// is required.
type ABITooNewError struct {
	Identity      UUID
	PluginVersion uint32
	HostVersion   uint32
}

func (e *ABITooNewError) Error() string {
	return fmt.Sprintf("codec %s: plugin ABI version %d is newer than host ABI version %d",
		e.Identity, e.PluginVersion, e.HostVersion)
}

// MissingCapabilityError reports a descriptor lacking a capability
// that its declared ABI version requires.
type MissingCapabilityError struct {
	Identity   UUID
	Capability string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("codec %s: descriptor is missing required capability %q",
		e.Identity, e.Capability)
}

// Negotiate validates a candidate descriptor against the host's
// maximum supported ABI version. It returns nil when the descriptor is
// acceptable, an [*ABITooNewError] when the plugin declares a version
// the host does not understand, or a [*MissingCapabilityError] when a
// capability required by the declared version is absent.
//
// Older plugins are always compatible: a descriptor with
// ABIVersion < hostMax is accepted as long as the capabilities its own
// version guarantees are present. Negotiate is pure and performs no
// I/O.
func Negotiate(desc *Descriptor, hostMax uint32) error {
	if desc.ABIVersion > hostMax {
		return &ABITooNewError{
			Identity:      desc.Identity,
			PluginVersion: desc.ABIVersion,
			HostVersion:   hostMax,
		}
	}

	// ABI version 1 requires all three capabilities. A declared
	// version of 0 guarantees nothing, which means the descriptor
	// carries no usable capabilities at all.
	switch {
	case desc.Compress == nil:
		return &MissingCapabilityError{Identity: desc.Identity, Capability: "compress"}
	case desc.Decompress == nil:
		return &MissingCapabilityError{Identity: desc.Identity, Capability: "decompress"}
	case desc.Bound == nil:
		return &MissingCapabilityError{Identity: desc.Identity, Capability: "compress_bound"}
	}

	return nil
}
