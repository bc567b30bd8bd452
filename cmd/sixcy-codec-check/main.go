// Copyright 2026 The Sixcy Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/sixcy-format/sixcy/lib/codecreg"
	"github.com/sixcy-format/sixcy/lib/config"
	"github.com/sixcy-format/sixcy/lib/dispatch"
	"github.com/sixcy-format/sixcy/lib/hostcodec"
	"github.com/sixcy-format/sixcy/lib/plugin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath      string
		pluginDir       string
		writeInventory  string
		verifyInventory string
		selfTest        bool
		level           int32
		jsonOutput      bool
	)

	flagSet := pflag.NewFlagSet("sixcy-codec-check", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to sixcy.yaml (default: SIXCY_CONFIG)")
	flagSet.StringVar(&pluginDir, "plugin-dir", "", "plugin directory to scan (overrides config)")
	flagSet.StringVar(&writeInventory, "write-inventory", "", "write the registry snapshot to this file")
	flagSet.StringVar(&verifyInventory, "verify-inventory", "", "compare the registry against a recorded snapshot")
	flagSet.BoolVar(&selfTest, "self-test", false, "round-trip a sample payload through every codec")
	flagSet.Int32Var(&level, "level", 0, "compression level for --self-test (0 = codec default)")
	flagSet.BoolVar(&jsonOutput, "json", false, "print the codec table as JSON")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if pluginDir != "" {
		cfg.PluginDir = pluginDir
	}
	if level == 0 {
		level = cfg.CompressionLevel
	}

	registry := codecreg.New()
	if err := hostcodec.Register(registry); err != nil {
		return fmt.Errorf("registering built-in codecs: %w", err)
	}

	var loaderOptions []plugin.Option
	if cfg.ConsistencyChecks {
		loaderOptions = append(loaderOptions, plugin.WithConsistencyChecks())
	}
	loader := plugin.NewLoader(registry, logger, loaderOptions...)

	if cfg.PluginDir != "" {
		handles, err := loader.LoadDir(cfg.PluginDir)
		if err != nil {
			return fmt.Errorf("scanning plugin directory: %w", err)
		}
		logger.Info("plugin directory scanned",
			"dir", cfg.PluginDir, "loaded", len(handles))
	}
	// Explicitly listed plugins follow the same warn-and-continue
	// policy as the scan; failures are surfaced through the exit code
	// after the codec table has been printed.
	failed := loadListedPlugins(loader, cfg.Plugins, logger)

	required, err := cfg.RequiredIdentities()
	if err != nil {
		return err
	}
	if err := registry.VerifyRequired(required); err != nil {
		return err
	}

	if selfTest {
		if err := runSelfTest(registry, level); err != nil {
			return err
		}
		logger.Info("self-test passed", "codecs", registry.Len(), "level", level)
	}

	if verifyInventory != "" {
		if err := verifySnapshot(registry, verifyInventory); err != nil {
			return err
		}
		logger.Info("inventory verified", "path", verifyInventory)
	}
	if writeInventory != "" {
		if err := writeSnapshot(registry, writeInventory); err != nil {
			return err
		}
		logger.Info("inventory written", "path", writeInventory)
	}

	if err := printTable(registry, jsonOutput); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d configured plugins failed to load: %s",
			len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// pluginLoader is the loading capability loadListedPlugins needs;
// satisfied by [*plugin.Loader].
type pluginLoader interface {
	Load(path string) (plugin.Handle, error)
}

// loadListedPlugins loads each explicitly configured plugin. A load
// failure is fatal only to that plugin's registration: it is logged
// as a warning and the remaining plugins still load. The returned
// paths name the plugins that were skipped.
func loadListedPlugins(loader pluginLoader, paths []string, logger *slog.Logger) []string {
	var failed []string
	for _, path := range paths {
		handle, err := loader.Load(path)
		if err != nil {
			logger.Warn("skipping configured codec plugin", "path", path, "error", err)
			failed = append(failed, path)
			continue
		}
		logger.Info("plugin loaded",
			"path", path, "identity", handle.Identity.String())
	}
	return failed
}

// loadConfig resolves the configuration: an explicit --config path,
// then SIXCY_CONFIG, then built-in defaults. Running without any
// config file is fine for inspecting the built-in codecs.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("SIXCY_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// runSelfTest round-trips a sample payload through every registered
// codec, including plugins, exercising the same dispatch path archive
// readers use.
func runSelfTest(registry *codecreg.Registry, level int32) error {
	engine := dispatch.New(registry)
	payload := bytes.Repeat([]byte("sixcy codec self-test payload "), 512)
	hash := dispatch.ContentHash(payload)

	for _, identity := range registry.Identities() {
		compressed, err := engine.Compress(identity, payload, level)
		if err != nil {
			return fmt.Errorf("self-test: codec %s: %w", identity, err)
		}
		plain, err := engine.DecompressVerified(identity, compressed, len(payload), hash)
		if err != nil {
			return fmt.Errorf("self-test: codec %s: %w", identity, err)
		}
		if !bytes.Equal(plain, payload) {
			return fmt.Errorf("self-test: codec %s: round trip mismatch", identity)
		}
	}
	return nil
}

func writeSnapshot(registry *codecreg.Registry, path string) error {
	data, err := codecreg.EncodeInventory(registry.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}

func verifySnapshot(registry *codecreg.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading inventory: %w", err)
	}
	recorded, err := codecreg.DecodeInventory(data)
	if err != nil {
		return fmt.Errorf("decoding inventory %s: %w", path, err)
	}
	if drift := recorded.Diff(registry.Snapshot()); len(drift) > 0 {
		for _, line := range drift {
			fmt.Fprintf(os.Stderr, "drift: %s\n", line)
		}
		return fmt.Errorf("registry drifted from recorded inventory %s (%d changes)", path, len(drift))
	}
	return nil
}

// tableRow is the per-codec record printed by the default and --json
// output modes.
type tableRow struct {
	Identity   string `json:"identity"`
	ShortID    uint32 `json:"short_id"`
	ABIVersion uint32 `json:"abi_version"`
	Name       string `json:"name,omitempty"`
}

func printTable(registry *codecreg.Registry, jsonOutput bool) error {
	rows := make([]tableRow, 0, registry.Len())
	for _, identity := range registry.Identities() {
		desc, ok := registry.ResolveIdentity(identity)
		if !ok {
			continue
		}
		name, _ := hostcodec.Name(identity)
		rows = append(rows, tableRow{
			Identity:   identity.String(),
			ShortID:    desc.ShortID,
			ABIVersion: desc.ABIVersion,
			Name:       name,
		})
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "IDENTITY\tSHORT\tABI\tNAME")
	for _, row := range rows {
		shortID := "-"
		if row.ShortID != 0 {
			shortID = fmt.Sprintf("%d", row.ShortID)
		}
		name := row.Name
		if name == "" {
			name = "(plugin)"
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n", row.Identity, shortID, row.ABIVersion, name)
	}
	return writer.Flush()
}
