// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MohiCodeHub/NeuralPilot/internal/export"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

func newPlainCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plain",
		Short: "Chat line by line without the full-screen view",
		Long: `plain reads one message per line and prints each reply below it.

Lines are edited with the usual readline keys and kept in a history file.
Type /quit or press Ctrl+D to leave.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlain(cmd, flags)
		},
	}
}

func runPlain(cmd *cobra.Command, flags *rootFlags) error {
	opts := appOptions{width: GetTerminalWidth()}
	if !IsStdoutTTY() {
		opts.glamourStyle = "notty"
	}
	a, err := newApp(cmd.Context(), flags, cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	historyPath, err := a.cfg.HistoryPath()
	if err != nil {
		a.log.Warn().Err(err).Msg("history disabled")
	}
	editor := newLineEditor(historyPath)
	defer editor.Close()

	a.log.Info().Str("endpoint", a.client.Endpoint()).Msg("starting plain chat")
	return runREPL(cmd.Context(), a.ctrl, editor, cmd.OutOrStdout(), newEntryPrinter(cmd.OutOrStdout(), a.renderer))
}

// =============================================================================
// LINE EDITING
// =============================================================================

// lineReader reads one line of input per call.
type lineReader interface {
	ReadInput(prompt string) (string, error)
}

// lineEditor provides input history and line editing.
type lineEditor struct {
	line        *liner.State
	historyFile string
}

// newLineEditor creates an editor and loads history from historyFile, if set.
func newLineEditor(historyFile string) *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	e := &lineEditor{line: line, historyFile: historyFile}
	e.loadHistory()
	return e
}

func (e *lineEditor) loadHistory() {
	if e.historyFile == "" {
		return
	}
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with the given prompt. Non-blank lines join the
// history.
func (e *lineEditor) ReadInput(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

func (e *lineEditor) saveHistory() {
	if e.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = e.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (e *lineEditor) Close() {
	e.saveHistory()
	_ = e.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

const (
	cmdQuit = "/quit"
	cmdExit = "/exit"
	cmdHelp = "/help"
	cmdSave = "/save"
)

// runREPL feeds lines to the controller until EOF, /quit or ctx ends.
// Replies are printed by p, which observes the controller's log.
func runREPL(ctx context.Context, ctrl *widget.Controller, in lineReader, out io.Writer, p *entryPrinter) error {
	unsubscribe := ctrl.Subscribe(p.Observe)
	defer unsubscribe()

	for _, e := range ctrl.Snapshot() {
		p.printEntry(e)
	}

	prompt := promptStyle.Render("You:") + " "
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.ReadInput(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return errors.Wrap(err, "read input")
		}

		fields := strings.Fields(line)
		if len(fields) > 0 {
			switch fields[0] {
			case cmdQuit, cmdExit:
				return nil
			case cmdHelp:
				fmt.Fprintln(out, infoStyle.Render("Type a message and press Enter. /save [file] writes the transcript, /quit leaves."))
				continue
			case cmdSave:
				fmt.Fprintln(out, infoStyle.Render(saveTranscript(ctrl, fields[1:])))
				continue
			}
		}

		if _, err := ctrl.Send(ctx, line); err != nil && !errors.Is(err, widget.ErrEmptyInput) {
			return err
		}
	}
}

// saveTranscript writes the transcript to args[0], or to a generated name in
// the working directory, and returns a status line.
func saveTranscript(ctrl *widget.Controller, args []string) string {
	t := export.NewTranscript(ctrl.SessionID(), ctrl.Snapshot())

	var (
		path string
		err  error
	)
	if len(args) > 0 {
		path = args[0]
		err = export.WriteFile(t, path)
	} else {
		path, err = export.ExportToFile(t, export.NewMarkdownExporter(nil), ".")
	}
	if err != nil {
		return "Save failed: " + err.Error()
	}
	return "Saved transcript to " + path
}
