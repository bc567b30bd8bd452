// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import "fmt"

// EntryPointMissingError reports a shared library that does not
// export the required codec entry symbol.
type EntryPointMissingError struct {
	Path   string
	Symbol string
	Err    error
}

func (e *EntryPointMissingError) Error() string {
	return fmt.Sprintf("codec plugin %s: entry point %q not found: %v", e.Path, e.Symbol, e.Err)
}

func (e *EntryPointMissingError) Unwrap() error { return e.Err }

// NullDescriptorError reports an entry point that returned a null
// descriptor pointer.
type NullDescriptorError struct {
	Path string
}

func (e *NullDescriptorError) Error() string {
	return fmt.Sprintf("codec plugin %s: entry point returned a null descriptor", e.Path)
}

// RejectedError reports a descriptor that failed ABI negotiation. The
// library has been unloaded; Reason is the negotiation error
// (ABITooNewError or MissingCapabilityError).
type RejectedError struct {
	Path   string
	Reason error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("codec plugin %s rejected: %v", e.Path, e.Reason)
}

func (e *RejectedError) Unwrap() error { return e.Reason }

// UnsupportedPlatformError reports that native library loading is not
// available on this platform.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("codec plugin loading is not supported on %s", e.GOOS)
}
