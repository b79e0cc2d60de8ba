// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	server     string
	sessionID  string
	logFile    string
	logLevel   string
	render     string
}

// NewRootCommand builds the neuralpilot command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "neuralpilot",
		Short: "Terminal chat client for the NeuralPilot research assistant",
		Long: `neuralpilot talks to a NeuralPilot server: each message is posted with
the session identifier and the reply is shown in the chat log.

Without a subcommand it opens the full-screen chat on a terminal and the
plain line-oriented chat otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !IsStdoutTTY() || !IsTTY() {
				return runPlain(cmd, flags)
			}
			return runTUI(cmd, flags)
		},
	}
	root.SetFlagErrorFunc(flagErrorFunc)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.neuralpilot/config.toml)")
	pf.StringVar(&flags.server, "server", "", "server base URL, e.g. http://127.0.0.1:5000")
	pf.StringVar(&flags.sessionID, "session-id", "", "session identifier (skips page discovery)")
	pf.StringVar(&flags.logFile, "log-file", "", "diagnostic log file")
	pf.StringVar(&flags.logLevel, "log-level", "", "diagnostic log level (trace, debug, info, warn, error)")
	pf.StringVar(&flags.render, "render", "", "reply rendering: text, markdown or raw")

	root.AddCommand(
		newTUICommand(flags),
		newPlainCommand(flags),
		newAskCommand(flags),
		newConfigCommand(flags),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command with os.Args and returns the exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		DisplayError(root.ErrOrStderr(), err)
	}
	return ExitCode(err)
}

// usageArgs tags positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
