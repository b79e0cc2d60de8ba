// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for NeuralPilot.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Chat endpoint location, timeout and body limit
//   - SessionConfig: Fixed session identifier (optional)
//   - UIConfig: Welcome text, render mode, input growth, transition timings
//   - LogConfig: Diagnostic log file and level
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (NEURALPILOT_*)
//   - ~/.neuralpilot/config.toml
//   - ~/.neuralpilot/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	timeout := cfg.Server.RequestTimeout.Std()
package config
