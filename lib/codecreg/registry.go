// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package codecreg

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// DuplicateIdentityError reports an attempt to register a second
// descriptor under an identity that is already accepted. Identities
// are frozen and never reused, so this always indicates a
// misconfigured plugin set.
type DuplicateIdentityError struct {
	Identity codecabi.UUID
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("codec %s is already registered", e.Identity)
}

// MissingCodecsError reports required codec identities with no
// registered descriptor. Every missing identity is listed so the
// operator can diagnose which plugin is absent.
type MissingCodecsError struct {
	Identities []codecabi.UUID
}

func (e *MissingCodecsError) Error() string {
	rendered := make([]string, len(e.Identities))
	for i, id := range e.Identities {
		rendered[i] = id.String()
	}
	return fmt.Sprintf("required codecs not registered: %s", strings.Join(rendered, ", "))
}

type entry struct {
	desc *codecabi.Descriptor

	// origin records where the descriptor came from (a plugin path,
	// or "builtin"). Diagnostics only.
	origin string
}

// Registry is the process-wide codec table. Safe for concurrent use;
// registration is serialized, resolution takes a read lock.
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[codecabi.UUID]*entry
	byShortID  map[uint32]*codecabi.Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byIdentity: make(map[codecabi.UUID]*entry),
		byShortID:  make(map[uint32]*codecabi.Descriptor),
	}
}

// Register accepts a descriptor into the table. origin names the
// descriptor's source for diagnostics (plugin path or "builtin").
//
// Registration fails with [*DuplicateIdentityError] if the identity is
// already present; the registry is unchanged by a failed attempt. The
// descriptor's short ID is indexed only when it is nonzero and not
// already claimed in this process: a collision silently costs this
// descriptor its fast path, since short IDs are advisory.
func (r *Registry) Register(desc *codecabi.Descriptor, origin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byIdentity[desc.Identity]; exists {
		return &DuplicateIdentityError{Identity: desc.Identity}
	}

	r.byIdentity[desc.Identity] = &entry{desc: desc, origin: origin}
	if desc.ShortID != 0 {
		if _, taken := r.byShortID[desc.ShortID]; !taken {
			r.byShortID[desc.ShortID] = desc
		}
	}
	return nil
}

// ResolveIdentity returns the descriptor for a codec identity. This is
// the only lookup permitted for on-disk-facing operations: every
// compress or decompress of persisted block data must resolve through
// the durable identity.
func (r *Registry) ResolveIdentity(identity codecabi.UUID) (*codecabi.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byIdentity[identity]
	if !ok {
		return nil, false
	}
	return e.desc, true
}

// ResolveShortID returns the descriptor for a nonzero advisory short
// ID. Permitted only for in-process fast dispatch after the identity
// has already been established by [Registry.ResolveIdentity] in the
// same run; never a substitute for identity resolution on persisted
// data.
func (r *Registry) ResolveShortID(id uint32) (*codecabi.Descriptor, bool) {
	if id == 0 {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.byShortID[id]
	return desc, ok
}

// VerifyRequired checks that every identity in required has a
// registered descriptor. Returns a [*MissingCodecsError] listing every
// absent identity, or nil when all are available. Archive readers call
// this against the superblock's required-codec list before touching
// any block.
func (r *Registry) VerifyRequired(required []codecabi.UUID) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []codecabi.UUID
	for _, id := range required {
		if _, ok := r.byIdentity[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &MissingCodecsError{Identities: missing}
	}
	return nil
}

// Len returns the number of registered codecs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byIdentity)
}

// Identities returns the registered identities sorted by their raw
// byte form, for deterministic iteration.
func (r *Registry) Identities() []codecabi.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]codecabi.UUID, 0, len(r.byIdentity))
	for id := range r.byIdentity {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
