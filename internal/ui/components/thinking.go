// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
)

// ThinkingLabel is shown while a reply is pending.
const ThinkingLabel = "NeuralPilot is thinking"

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// Thinking animates the trailing dots of the pending bubble.
type Thinking struct {
	spinner spinner.Model
	active  bool
	theme   *styles.Theme
}

// NewThinking creates an idle indicator.
func NewThinking(theme *styles.Theme) Thinking {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.DotsSpinner.Frames,
		FPS:    styles.DotsSpinner.Duration(),
	}
	return Thinking{spinner: s, theme: theme}
}

// Start begins the animation. It returns nil if already running, so a
// second tick loop is never started.
func (t *Thinking) Start() tea.Cmd {
	if t.active {
		return nil
	}
	t.active = true
	return t.spinner.Tick
}

// Stop ends the animation; the next tick is dropped.
func (t *Thinking) Stop() {
	t.active = false
}

// Active reports whether the dots are animating.
func (t Thinking) Active() bool {
	return t.active
}

// Update advances the dots on spinner ticks.
func (t Thinking) Update(msg tea.Msg) (Thinking, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// Dots returns the current dot frame.
func (t Thinking) Dots() string {
	return t.spinner.View()
}

// View renders the label and dots.
func (t Thinking) View() string {
	return RenderThinking(t.theme, t.Dots())
}

// RenderThinking renders the label followed by dots.
func RenderThinking(theme *styles.Theme, dots string) string {
	return theme.ThinkingText.Render(ThinkingLabel) + theme.ThinkingDots.Render(dots)
}
