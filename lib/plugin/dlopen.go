// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || freebsd || linux

package plugin

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// dlopenLibrary wraps a native library handle obtained via dlopen.
type dlopenLibrary struct {
	handle uintptr
}

// OpenLibrary loads the shared library at path. RTLD_NOW surfaces
// unresolved symbols at load time, before any codec call; RTLD_LOCAL
// keeps plugin symbols out of the global namespace so independent
// plugins cannot shadow each other.
func OpenLibrary(path string) (Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return &dlopenLibrary{handle: handle}, nil
}

func (l *dlopenLibrary) Sym(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("dlsym %q: %w", name, err)
	}
	return addr, nil
}

func (l *dlopenLibrary) Close() error {
	if err := purego.Dlclose(l.handle); err != nil {
		return fmt.Errorf("dlclose: %w", err)
	}
	return nil
}
