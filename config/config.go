// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: User configuration: target-spec aliases and focus-history
// settings. Loads YAML from the user config directory, writes the embedded
// defaults there on first run, and fills gaps from the defaults so partial
// files stay valid.

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/graythane/swayfocus/defaults"
)

// History configures the persistent focus-jump history.
type History struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path"`
	Limit    int    `yaml:"limit"`
}

// Config is the full user configuration.
type Config struct {
	// Aliases maps a command name to an ordered target-spec list.
	Aliases map[string][]string `yaml:"aliases"`
	History History             `yaml:"history"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	// The embedded defaults are validated by tests; a decode failure here
	// is a build defect.
	if err := yaml.Unmarshal(defaults.Config(), &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load reads the user's config file, creating it from the embedded defaults
// when missing. Errors fall back to the defaults so navigation keeps working
// on a broken config; the error is returned for reporting.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if werr := writeDefault(path); werr != nil {
			log.Printf("Config: Failed to write default config: %v", werr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parsing %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, defaults.Config(), 0o644)
}

// applyDefaults fills unset fields from the embedded defaults. User aliases
// override built-ins of the same name; other built-ins stay available.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Aliases == nil {
		cfg.Aliases = def.Aliases
	} else {
		for name, specs := range def.Aliases {
			if _, ok := cfg.Aliases[name]; !ok {
				cfg.Aliases[name] = specs
			}
		}
	}
	if cfg.History.Limit <= 0 {
		cfg.History.Limit = def.History.Limit
	}
}

// HistoryPath resolves the history database location, honoring an explicit
// path in the config.
func (c Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// ExpandAliases substitutes each argument that names an alias with its target
// specs. Expansion is a single level; alias values are target specs, not
// other aliases.
func (c Config) ExpandAliases(args []string) []string {
	var out []string
	for _, a := range args {
		if specs, ok := c.Aliases[a]; ok {
			out = append(out, specs...)
			continue
		}
		out = append(out, a)
	}
	return out
}
