// Copyright © 2025 Swayfocus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration. The embedded YAML is the single
// source of truth for built-in aliases and history settings.

package defaults

import _ "embed"

//go:embed config.yaml
var configYAML []byte

// Config returns the embedded default configuration YAML.
func Config() []byte {
	return configYAML
}
