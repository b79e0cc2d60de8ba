// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	tests := []struct {
		name     string
		wantDark bool
	}{
		{"dark", true},
		{"light", false},
		{"LIGHT", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			theme := NewTheme(tc.name)
			assert.Equal(t, tc.wantDark, theme.IsDark)
		})
	}
	lipgloss.SetHasDarkBackground(true)
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme("dark")

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"UserBubble", theme.UserBubble},
		{"BotBubble", theme.BotBubble},
		{"FailedBubble", theme.FailedBubble},
		{"FadedBubble", theme.FadedBubble},
		{"HighlightBubble", theme.HighlightBubble},
		{"ThinkingText", theme.ThinkingText},
		{"InputContainer", theme.InputContainer},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		rendered := s.style.Render("test")
		assert.Contains(t, rendered, "test", s.name)
	}
}

func TestThemeLayout(t *testing.T) {
	theme := NewTheme("dark")

	tests := []struct {
		width      int
		wantMode   LayoutMode
		wantBubble int
	}{
		{40, LayoutNarrow, 38},
		{80, LayoutMedium, 60},
		{120, LayoutWide, 90},
		{4, LayoutNarrow, 10},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		assert.Equal(t, tc.wantMode, theme.GetLayoutMode(), "width %d", tc.width)
		assert.Equal(t, tc.wantBubble, theme.BubbleWidth(), "width %d", tc.width)
	}
}

// =============================================================================
// ANIMATION TESTS
// =============================================================================

func TestSpinnerFrame(t *testing.T) {
	s := SpinnerConfig{Frames: []string{"a", "b", "c"}, FPS: 4}

	assert.Equal(t, "a", s.Frame(0))
	assert.Equal(t, "c", s.Frame(2))
	assert.Equal(t, "a", s.Frame(3))
	assert.Equal(t, "b", s.Frame(-1))
	assert.Equal(t, time.Second/4, s.Duration())

	assert.Equal(t, "", SpinnerConfig{}.Frame(1))
	assert.Equal(t, time.Second, SpinnerConfig{}.Duration())
}

func TestDotsSpinnerWidth(t *testing.T) {
	for i, f := range DotsSpinner.Frames {
		assert.Len(t, f, 3, "frame %d", i)
		assert.Empty(t, strings.Trim(f, ". "), "frame %d", i)
	}
}

func TestTransitionNext(t *testing.T) {
	tests := []struct {
		name     string
		cfg      TransitionConfig
		from     Phase
		wantNext Phase
		wantDur  time.Duration
	}{
		{"start", DefaultTransition, PhaseSteady, PhaseFadeOut, 300 * time.Millisecond},
		{"after fade", DefaultTransition, PhaseFadeOut, PhaseHighlight, 500 * time.Millisecond},
		{"after highlight", DefaultTransition, PhaseHighlight, PhaseSteady, 0},
		{"no fade", TransitionConfig{Highlight: time.Second}, PhaseSteady, PhaseHighlight, time.Second},
		{"no highlight", TransitionConfig{FadeOut: time.Second}, PhaseFadeOut, PhaseSteady, 0},
		{"disabled", TransitionConfig{}, PhaseSteady, PhaseSteady, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, d := tc.cfg.Next(tc.from)
			assert.Equal(t, tc.wantNext, next)
			assert.Equal(t, tc.wantDur, d)
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "steady", PhaseSteady.String())
	assert.Equal(t, "fade-out", PhaseFadeOut.String())
	assert.Equal(t, "highlight", PhaseHighlight.String())
}
