// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
	"github.com/MohiCodeHub/NeuralPilot/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status is the widget state shown at the left of the bar.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusClosed
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking"
	case StatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Icon pairs the status with a shape.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Ready
	case StatusThinking:
		return styles.StatusIndicators.Thinking
	default:
		return styles.StatusIndicators.Failed
	}
}

// StatusBar is the bottom line of the chat view.
type StatusBar struct {
	Status   Status
	Endpoint string
	Notice   string
	Width    int
	theme    *styles.Theme
}

// NewStatusBar creates a ready status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Status: StatusReady, Width: 80, theme: theme}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the bar. Narrow terminals drop the endpoint and key hints.
func (s *StatusBar) View() string {
	left := s.renderStatus()
	if s.Notice != "" {
		left += "  " + s.theme.StatusNotice.Render(s.Notice)
	} else if s.Endpoint != "" && s.Width >= 60 {
		left += "  " + s.theme.StatusMuted.Render(util.TruncateWidth(s.Endpoint, s.Width/3))
	}

	right := ""
	if s.Width >= 60 {
		right = s.renderShortcuts()
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := left
	if gap >= 1 && right != "" {
		line = left + strings.Repeat(" ", gap) + right
	}
	return s.theme.StatusBar.Width(s.Width).MaxWidth(s.Width).Render(line)
}

func (s *StatusBar) renderStatus() string {
	text := s.Status.Icon() + " " + s.Status.String()
	if s.Status == StatusThinking {
		return s.theme.StatusThinking.Render(text)
	}
	if s.Status == StatusClosed {
		return s.theme.ErrorText.Render(text)
	}
	return s.theme.StatusReady.Render(text)
}

func (s *StatusBar) renderShortcuts() string {
	key := s.theme.SendButton
	desc := s.theme.StatusMuted

	esc := "quit"
	if s.Status == StatusThinking {
		esc = "cancel"
	}
	shortcuts := []string{
		key.Render("enter") + " " + desc.Render("send"),
		key.Render("^Y") + " " + desc.Render("copy"),
		key.Render("esc") + " " + desc.Render(esc),
	}
	return strings.Join(shortcuts, "  ")
}
