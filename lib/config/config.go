// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

// Config is the host configuration for sixcy tools.
type Config struct {
	// PluginDir is scanned for codec plugin shared objects at
	// startup. Empty means no directory scan.
	PluginDir string `yaml:"plugin_dir"`

	// Plugins lists individual plugin paths loaded in addition to
	// the directory scan. A listed plugin that fails to load does
	// not stop the remaining plugins from loading, but tools report
	// the failure.
	Plugins []string `yaml:"plugins"`

	// RequiredCodecs lists codec identities (canonical UUID form)
	// that must be resolvable after startup. A host refusing to run
	// without, say, zstd declares it here.
	RequiredCodecs []string `yaml:"required_codecs"`

	// CompressionLevel is the level passed to codecs when the caller
	// does not choose one. Interpretation is codec-specific; zero
	// selects the codec's own default. Valid range 0 to 22 (the
	// richest level space among the built-in codecs).
	CompressionLevel int32 `yaml:"compression_level"`

	// ConsistencyChecks enables extra plugin validation at load time
	// (entry point idempotence). Off by default.
	ConsistencyChecks bool `yaml:"consistency_checks"`
}

// Default returns the default configuration. These defaults are the
// base before loading the config file; tools that run without a config
// file use them as-is.
func Default() *Config {
	return &Config{
		CompressionLevel: 3,
	}
}

// Load loads configuration from the SIXCY_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks: if SIXCY_CONFIG is not set, this fails.
func Load() (*Config, error) {
	path := os.Getenv("SIXCY_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("SIXCY_CONFIG environment variable not set; " +
			"set it to the path of your sixcy.yaml config file, or use --config flag")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values; the only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	c.PluginDir = expandVars(c.PluginDir)
	for i, p := range c.Plugins {
		c.Plugins[i] = expandVars(p)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	for _, raw := range c.RequiredCodecs {
		if _, err := codecabi.ParseUUID(raw); err != nil {
			errs = append(errs, fmt.Errorf("required_codecs: %w", err))
		}
	}

	for _, p := range c.Plugins {
		if p == "" {
			errs = append(errs, fmt.Errorf("plugins: empty path"))
		}
	}

	if c.CompressionLevel < 0 || c.CompressionLevel > 22 {
		errs = append(errs, fmt.Errorf("compression_level %d out of range 0-22", c.CompressionLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequiredIdentities parses RequiredCodecs into identities. Call
// [Config.Validate] first for aggregated error reporting; this returns
// on the first bad entry.
func (c *Config) RequiredIdentities() ([]codecabi.UUID, error) {
	ids := make([]codecabi.UUID, 0, len(c.RequiredCodecs))
	for _, raw := range c.RequiredCodecs {
		id, err := codecabi.ParseUUID(raw)
		if err != nil {
			return nil, fmt.Errorf("required_codecs: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
