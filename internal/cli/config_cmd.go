// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MohiCodeHub/NeuralPilot/internal/config"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Long: `config manages the NeuralPilot configuration file.

Keys use dot notation, for example server.base_url or ui.render_mode.`,
	}
	cmd.AddCommand(
		newConfigShowCommand(flags),
		newConfigPathCommand(flags),
		newConfigInitCommand(flags),
		newConfigGetCommand(flags),
		newConfigSetCommand(flags),
		newConfigKeysCommand(),
	)
	return cmd
}

// configFile returns the file config commands read and write.
func configFile(flags *rootFlags) (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.ConfigPathTOML()
}

// readConfigFile loads only the file, without environment or flag
// overrides, so a save does not persist them.
func readConfigFile(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	load := config.LoadTOML
	if strings.HasSuffix(path, ".json") {
		load = config.LoadJSON
	}
	if err := load(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfigFile(cfg *config.Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

func newConfigShowCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(flags, cmd.ErrOrStderr()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.Global().String())
			return nil
		},
	}
}

func newConfigPathCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configFile(flags)
			if err != nil {
				return NewCommandError("config", "path", "cannot locate config directory", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configFile(flags)
			if err != nil {
				return NewCommandError("config", "init", "cannot locate config directory", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return NewCommandError("config", "init", path+" already exists (use --force)", nil)
			}
			if flags.configPath == "" {
				if err := config.EnsureConfigDir(); err != nil {
					return NewCommandError("config", "init", "cannot create config directory", err)
				}
			}
			if err := writeConfigFile(config.Default(), path); err != nil {
				return NewCommandError("config", "init", "write failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigGetCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one effective configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return &usageError{err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one value in the configuration file",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFile(flags)
			if err != nil {
				return NewCommandError("config", "set", "cannot locate config directory", err)
			}
			cfg, err := readConfigFile(path)
			if err != nil {
				return NewCommandError("config", "set", "cannot read "+path, err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return &usageError{err: err}
			}
			cfg.SetDefaults()
			if err := cfg.Validate(); err != nil {
				return &usageError{err: err}
			}
			if flags.configPath == "" {
				if err := config.EnsureConfigDir(); err != nil {
					return NewCommandError("config", "set", "cannot create config directory", err)
				}
			}
			if err := writeConfigFile(cfg, path); err != nil {
				return NewCommandError("config", "set", "write failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List configuration keys",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, key := range config.GetAllKeys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}
