// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config_test.go
// Summary: Exercises config loading, default seeding, and alias expansion.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	for _, alias := range []string{"right", "left", "up", "down", "next", "previous"} {
		if len(cfg.Aliases[alias]) == 0 {
			t.Errorf("built-in alias %q missing", alias)
		}
	}
	if cfg.History.Disabled {
		t.Error("history should be enabled by default")
	}
	if cfg.History.Limit <= 0 {
		t.Errorf("history limit not set: %d", cfg.History.Limit)
	}
}

func TestLoadMissingWritesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Aliases["right"]) == 0 {
		t.Fatal("defaults not applied")
	}

	// First run seeds the user's config file with the defaults.
	if _, err := os.Stat(filepath.Join(dir, "swayfocus", "config.yaml")); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadUserOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	user := `
aliases:
  right: [split-rw]
  editor: [group-rt]
history:
  disabled: true
`
	if err := os.WriteFile(path, []byte(user), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Aliases["right"], []string{"split-rw"}) {
		t.Fatalf("user alias not honored: %v", cfg.Aliases["right"])
	}
	if !reflect.DeepEqual(cfg.Aliases["editor"], []string{"group-rt"}) {
		t.Fatalf("new alias missing: %v", cfg.Aliases["editor"])
	}
	// Built-ins the user did not touch stay available.
	if len(cfg.Aliases["left"]) == 0 {
		t.Fatal("untouched built-in alias lost")
	}
	if !cfg.History.Disabled {
		t.Fatal("history.disabled not honored")
	}
	if cfg.History.Limit <= 0 {
		t.Fatal("history limit default not filled in")
	}
}

func TestLoadBrokenConfigFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("aliases: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	// Navigation must keep working on the defaults.
	if len(cfg.Aliases["right"]) == 0 {
		t.Fatal("fallback defaults missing")
	}
}

func TestExpandAliases(t *testing.T) {
	cfg := Config{Aliases: map[string][]string{
		"right": {"split-rt", "output-rs"},
	}}

	got := cfg.ExpandAliases([]string{"right", "float-lw"})
	want := []string{"split-rt", "output-rs", "float-lw"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expansion = %v, want %v", got, want)
	}
}

func TestHistoryPathOverride(t *testing.T) {
	cfg := Config{History: History{Path: "/tmp/custom.db"}}
	got, err := cfg.HistoryPath()
	if err != nil || got != "/tmp/custom.db" {
		t.Fatalf("explicit path not honored: %q, %v", got, err)
	}
}
