// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MohiCodeHub/NeuralPilot/internal/ui/chat"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
)

func newTUICommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen chat",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	a, err := newApp(cmd.Context(), flags, cmd.ErrOrStderr(), appOptions{width: GetTerminalWidth()})
	if err != nil {
		return err
	}
	defer a.Close()

	theme := styles.NewTheme(a.cfg.UI.Theme)
	m := chat.New(a.ctrl, chat.Options{
		Theme:        theme,
		Renderer:     a.renderer,
		InputMaxRows: a.cfg.UI.InputMaxRows,
		Transition: styles.TransitionConfig{
			FadeOut:   a.cfg.UI.FadeOut.Std(),
			Highlight: a.cfg.UI.Highlight.Std(),
		},
		ShowTimestamps: a.cfg.UI.ShowTimestamps,
		Endpoint:       a.client.Endpoint(),
	})

	a.log.Info().Str("endpoint", a.client.Endpoint()).Msg("starting tui")

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.log.Error().Err(err).Msg("tui exited with error")
		return err
	}
	return nil
}
