// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MohiCodeHub/NeuralPilot/internal/render"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

// maxStdinBytes caps a question piped on stdin.
const maxStdinBytes = 64 * 1024

func newAskCommand(flags *rootFlags) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send one message and print the reply",
		Long: `ask sends a single message and prints the reply, then exits.

The message is the joined arguments, or stdin when no arguments are given.
A failed request prints the fallback reply; the exit status stays 0.`,
		Example: `  neuralpilot ask "What is a transformer?"
  echo "Summarize attention" | neuralpilot ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, flags, args, quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the reply text")
	return cmd
}

func runAsk(cmd *cobra.Command, flags *rootFlags, args []string, quiet bool) error {
	message := strings.Join(args, " ")
	if len(args) == 0 && !IsTTY() {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinBytes))
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}
		message = string(data)
	}
	if strings.TrimSpace(message) == "" {
		return &usageError{err: errors.New("ask needs a message")}
	}

	opts := appOptions{width: GetTerminalWidth()}
	if quiet || !IsStdoutTTY() {
		opts.glamourStyle = "notty"
	}
	a, err := newApp(cmd.Context(), flags, cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.ctrl.Send(cmd.Context(), message)
	if err != nil {
		if errors.Is(err, widget.ErrEmptyInput) {
			return &usageError{err: err}
		}
		return err
	}

	out := cmd.OutOrStdout()
	if quiet {
		fmt.Fprintln(out, render.Sanitize(entry.Content))
		return nil
	}
	newEntryPrinter(out, a.renderer).printEntry(entry)
	return nil
}
