// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds every lipgloss style the chat view uses.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style

	// Message bubbles
	UserBubble      lipgloss.Style
	BotBubble       lipgloss.Style
	FailedBubble    lipgloss.Style
	FadedBubble     lipgloss.Style
	HighlightBubble lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style

	// Thinking indicator
	ThinkingText lipgloss.Style
	ThinkingDots lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	SendButton     lipgloss.Style
	SendButtonIdle lipgloss.Style
	InputHint      lipgloss.Style

	// Status bar
	StatusBar      lipgloss.Style
	StatusReady    lipgloss.Style
	StatusThinking lipgloss.Style
	StatusNotice   lipgloss.Style
	StatusMuted    lipgloss.Style

	// Errors
	ErrorText lipgloss.Style
}

// NewTheme creates a theme. name is "dark", "light" or "auto"; anything
// else falls back to terminal detection.
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := true
	switch strings.ToLower(name) {
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)

	t.FailedBubble = t.BotBubble.
		Foreground(FailedBubbleFg).
		BorderForeground(Rose)

	t.FadedBubble = t.BotBubble.
		Foreground(TextFaded).
		BorderForeground(Overlay)

	t.HighlightBubble = t.BotBubble.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Amber)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Thinking indicator
	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.ThinkingDots = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SendButton = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.SendButtonIdle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusReady = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusThinking = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StatusNotice = lipgloss.NewStyle().
		Foreground(Sky)

	t.StatusMuted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleWidth is the widest a message bubble may be at the current size.
func (t *Theme) BubbleWidth() int {
	return BubbleWidth(t.Width)
}

// BubbleWidth is the widest a message bubble may be in a view of width columns.
func BubbleWidth(width int) int {
	w := width * 3 / 4
	if width < 60 {
		w = width - 2
	}
	if w < 10 {
		w = 10
	}
	return w
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
