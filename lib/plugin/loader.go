// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sixcy-format/sixcy/lib/codecabi"
	"github.com/sixcy-format/sixcy/lib/codecreg"
)

// Library is the dynamic-loading capability: resolve a symbol by
// name, close the library. The production implementation is
// [OpenLibrary] (dlopen-backed); the loader never depends on more
// than this surface.
type Library interface {
	Sym(name string) (uintptr, error)
	Close() error
}

// Handle identifies a successfully loaded plugin. The library behind
// it stays mapped for the life of the process.
type Handle struct {
	Identity   codecabi.UUID
	ShortID    uint32
	ABIVersion uint32
	Path       string
}

// Loader validates and registers codec plugins. Construct with
// [NewLoader]; safe to call Load from one goroutine at a time per
// loader (the registry serializes its own write path, so independent
// loaders may run concurrently for independent plugins).
type Loader struct {
	registry          *codecreg.Registry
	logger            *slog.Logger
	hostVersion       uint32
	consistencyChecks bool

	// Injection points, defaulted to the native implementations.
	openLibrary func(path string) (Library, error)
	callEntry   func(addr uintptr) uintptr
}

// Option configures a Loader.
type Option func(*Loader)

// WithHostABIVersion overrides the ABI version the loader negotiates
// against. The default is [codecabi.HostABIVersion].
func WithHostABIVersion(version uint32) Option {
	return func(l *Loader) { l.hostVersion = version }
}

// WithConsistencyChecks enables the entry-point idempotence check:
// the entry symbol is called twice and must return the same address.
// The contract requires idempotence, but correctness never depends on
// this check; it exists to catch broken plugins early.
func WithConsistencyChecks() Option {
	return func(l *Loader) { l.consistencyChecks = true }
}

// NewLoader returns a loader that registers accepted plugins with
// registry.
func NewLoader(registry *codecreg.Registry, logger *slog.Logger, opts ...Option) *Loader {
	l := &Loader{
		registry:    registry,
		logger:      logger,
		hostVersion: codecabi.HostABIVersion,
		openLibrary: OpenLibrary,
		callEntry:   callEntry,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens the shared library at path, obtains its descriptor, and
// registers it on acceptance. On any failure the library is unloaded
// and an error describing the rejection is returned; the registry is
// unchanged. On success the library is never unloaded: the registry
// holds live function pointers into it.
func (l *Loader) Load(path string) (Handle, error) {
	lib, err := l.openLibrary(path)
	if err != nil {
		return Handle{}, fmt.Errorf("opening codec plugin %s: %w", path, err)
	}

	sym, err := lib.Sym(codecabi.EntrySymbol)
	if err != nil {
		l.closeLibrary(path, lib)
		return Handle{}, &EntryPointMissingError{Path: path, Symbol: codecabi.EntrySymbol, Err: err}
	}

	addr := l.callEntry(sym)
	if addr == 0 {
		l.closeLibrary(path, lib)
		return Handle{}, &NullDescriptorError{Path: path}
	}
	if l.consistencyChecks {
		if second := l.callEntry(sym); second != addr {
			l.closeLibrary(path, lib)
			return Handle{}, fmt.Errorf("codec plugin %s: entry point is not idempotent (%#x then %#x)",
				path, addr, second)
		}
	}

	raw := decodeDescriptor(addr)
	desc := &codecabi.Descriptor{
		Identity:   raw.identity,
		ShortID:    raw.shortID,
		ABIVersion: raw.abiVersion,
	}
	if raw.fnCompress != 0 {
		desc.Compress = compressCapability(raw.fnCompress)
	}
	if raw.fnDecompress != 0 {
		desc.Decompress = decompressCapability(raw.fnDecompress)
	}
	if raw.fnBound != 0 {
		desc.Bound = boundCapability(raw.fnBound)
	}

	if err := codecabi.Negotiate(desc, l.hostVersion); err != nil {
		l.closeLibrary(path, lib)
		return Handle{}, &RejectedError{Path: path, Reason: err}
	}

	if err := l.registry.Register(desc, path); err != nil {
		l.closeLibrary(path, lib)
		return Handle{}, fmt.Errorf("registering codec plugin %s: %w", path, err)
	}

	l.logger.Info("codec plugin loaded",
		"path", path,
		"identity", desc.Identity.String(),
		"abi_version", desc.ABIVersion,
		"short_id", desc.ShortID)

	return Handle{
		Identity:   desc.Identity,
		ShortID:    desc.ShortID,
		ABIVersion: desc.ABIVersion,
		Path:       path,
	}, nil
}

// LoadDir loads every plugin library in dir, in filename order. A
// plugin that fails to load is fatal to that plugin only: the failure
// is logged as a warning and loading continues with the rest. The
// returned handles cover the plugins that were accepted.
func (l *Loader) LoadDir(dir string) ([]Handle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading plugin directory %s: %w", dir, err)
	}

	var handles []Handle
	for _, entry := range entries {
		if entry.IsDir() || !isPluginFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		handle, err := l.Load(path)
		if err != nil {
			l.logger.Warn("skipping codec plugin", "path", path, "error", err)
			continue
		}
		handles = append(handles, handle)
	}
	return handles, nil
}

func isPluginFile(name string) bool {
	return strings.HasSuffix(name, ".so") || strings.HasSuffix(name, ".dylib")
}

func (l *Loader) closeLibrary(path string, lib Library) {
	if err := lib.Close(); err != nil {
		l.logger.Warn("unloading rejected codec plugin", "path", path, "error", err)
	}
}
