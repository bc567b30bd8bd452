// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sixcy-format/sixcy/lib/codecabi"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.CompressionLevel != 3 {
		t.Errorf("expected compression_level=3, got %d", cfg.CompressionLevel)
	}
	if cfg.ConsistencyChecks {
		t.Error("expected consistency_checks=false by default")
	}
	if cfg.PluginDir != "" {
		t.Errorf("expected empty plugin_dir, got %q", cfg.PluginDir)
	}
}

func TestLoad_RequiresSixcyConfig(t *testing.T) {
	t.Setenv("SIXCY_CONFIG", "")
	os.Unsetenv("SIXCY_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SIXCY_CONFIG not set, got nil")
	}
	if !strings.Contains(err.Error(), "SIXCY_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_WithSixcyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sixcy.yaml")

	configContent := `
plugin_dir: /test/plugins
plugins:
  - /test/extra/brotli.so
required_codecs:
  - b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f
compression_level: 9
consistency_checks: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("SIXCY_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.PluginDir != "/test/plugins" {
		t.Errorf("expected plugin_dir=/test/plugins, got %q", cfg.PluginDir)
	}
	if len(cfg.Plugins) != 1 || cfg.Plugins[0] != "/test/extra/brotli.so" {
		t.Errorf("unexpected plugins: %v", cfg.Plugins)
	}
	if cfg.CompressionLevel != 9 {
		t.Errorf("expected compression_level=9, got %d", cfg.CompressionLevel)
	}
	if !cfg.ConsistencyChecks {
		t.Error("expected consistency_checks=true")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("SIXCY_TEST_PLUGIN_ROOT", "/opt/sixcy")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sixcy.yaml")
	configContent := `
plugin_dir: ${SIXCY_TEST_PLUGIN_ROOT}/plugins
plugins:
  - ${SIXCY_TEST_UNSET:-/fallback}/codec.so
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.PluginDir != "/opt/sixcy/plugins" {
		t.Errorf("expected expanded plugin_dir, got %q", cfg.PluginDir)
	}
	if cfg.Plugins[0] != "/fallback/codec.so" {
		t.Errorf("expected default expansion, got %q", cfg.Plugins[0])
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.RequiredCodecs = []string{"b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.RequiredCodecs = append(cfg.RequiredCodecs, "not-a-uuid")
	cfg.Plugins = []string{""}
	cfg.CompressionLevel = 99
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	if !strings.Contains(err.Error(), "required_codecs") {
		t.Errorf("expected required_codecs error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "plugins: empty path") {
		t.Errorf("expected plugins error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "compression_level") {
		t.Errorf("expected compression_level error, got %q", err.Error())
	}
}

func TestRequiredIdentities(t *testing.T) {
	cfg := Default()
	cfg.RequiredCodecs = []string{"b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f"}

	ids, err := cfg.RequiredIdentities()
	if err != nil {
		t.Fatalf("RequiredIdentities() failed: %v", err)
	}
	want := codecabi.MustParseUUID("b28a9d4f-5e3c-4a1b-8f2e-7c6d9b0e1a2f")
	if len(ids) != 1 || ids[0] != want {
		t.Errorf("unexpected identities: %v", ids)
	}

	cfg.RequiredCodecs = []string{"garbage"}
	if _, err := cfg.RequiredIdentities(); err == nil {
		t.Error("expected error for unparseable identity")
	}
}
