package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// fileConfig holds the subset of cmd/cht's settings that can come from a
// JSONC config file.
type fileConfig struct {
	NumBuckets    *uint64 `json:"num_buckets,omitempty"`
	Threads       *int    `json:"threads,omitempty"`
	Variant       string  `json:"variant,omitempty"`
	ResizeEnabled *bool   `json:"resize_enabled,omitempty"`
}

// configFileName is the project-local config file, checked relative to the
// current working directory.
const configFileName = ".cht.json"

var errInvalidConfigFile = errors.New("cht: invalid config file")

// getGlobalConfigPath resolves the global config file: XDG_CONFIG_HOME if
// set, otherwise $HOME/.config.
func getGlobalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "cht", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "cht", "config.json")
	}

	return ""
}

func loadFileConfig(path string) (fileConfig, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from trusted env/cwd
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errInvalidConfigFile, path, err)
	}

	var cfg fileConfig

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errInvalidConfigFile, path, err)
	}

	return cfg, true, nil
}

func mergeFileConfig(base, overlay fileConfig) fileConfig {
	if overlay.NumBuckets != nil {
		base.NumBuckets = overlay.NumBuckets
	}

	if overlay.Threads != nil {
		base.Threads = overlay.Threads
	}

	if overlay.Variant != "" {
		base.Variant = overlay.Variant
	}

	if overlay.ResizeEnabled != nil {
		base.ResizeEnabled = overlay.ResizeEnabled
	}

	return base
}

// loadConfig applies defaults < global config < project config, in that
// order. CLI flags are applied on top by the caller, last, so they always
// win.
func loadConfig(workDir string, env map[string]string) (fileConfig, error) {
	var cfg fileConfig

	if globalPath := getGlobalConfigPath(env); globalPath != "" {
		global, loaded, err := loadFileConfig(globalPath)
		if err != nil {
			return fileConfig{}, err
		}

		if loaded {
			cfg = mergeFileConfig(cfg, global)
		}
	}

	project, loaded, err := loadFileConfig(filepath.Join(workDir, configFileName))
	if err != nil {
		return fileConfig{}, err
	}

	if loaded {
		cfg = mergeFileConfig(cfg, project)
	}

	return cfg, nil
}
