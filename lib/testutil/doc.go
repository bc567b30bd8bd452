// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for sixcy packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with a time.After fallback) so that individual tests do not
// need direct time.After calls; a worker that never reports fails the
// test instead of hanging it.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no sixcy-internal dependencies.
package testutil
