// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// UnknownCodecError reports a codec identity with no registered
// descriptor. The identity is rendered in full so the operator can
// tell a missing plugin apart from genuine corruption.
type UnknownCodecError struct {
	Identity codecabi.UUID
}

func (e *UnknownCodecError) Error() string {
	return fmt.Sprintf("no registered codec for identity %s (plugin not loaded?)", e.Identity)
}

// OverflowError reports a compress call that kept overflowing after
// the retry budget was exhausted.
type OverflowError struct {
	Identity codecabi.UUID
	Attempts int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("codec %s: compress output kept overflowing after %d attempts", e.Identity, e.Attempts)
}

// CorruptError reports corrupt or inconsistent data: either the codec
// reported corrupt input, or the persisted size/hash metadata
// disagrees with what the codec produced. Never silently swallowed;
// on decompress it indicates potential data loss.
type CorruptError struct {
	Identity codecabi.UUID
	Op       string
	Detail   string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("codec %s: %s: %s", e.Identity, e.Op, e.Detail)
}

// InternalError reports a codec-internal failure (OOM, invalid level)
// or an out-of-contract return: an unknown status code, or a written
// length the given buffer cannot hold.
type InternalError struct {
	Identity codecabi.UUID
	Op       string
	Status   codecabi.Status
	Detail   string
}

func (e *InternalError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("codec %s: %s: %s (status %s)", e.Identity, e.Op, e.Detail, e.Status)
	}
	return fmt.Sprintf("codec %s: %s failed with status %s", e.Identity, e.Op, e.Status)
}
