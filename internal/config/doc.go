// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for devconsole.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ConsoleConfig: Prompt, banner, scrollback and theme
//   - LogConfig: zap level and output file
//   - ValuesConfig: Values file applied at start, optionally watched
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DEVCONSOLE_*)
//   - ~/.devconsole/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The console settings are also console properties:
//
//	sess.Extend(cfg)
//	sess.Submit("console.max_lines 200")
package config
