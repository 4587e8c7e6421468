// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for swayfocus configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

const configName = "config.yaml"

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "swayfocus"), nil
}

// Path returns the location of the user's config file, whether or not it
// exists yet.
func Path() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configName), nil
}

// DataDir returns the directory for persistent state such as the focus
// history database.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "swayfocus"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "swayfocus"), nil
}
