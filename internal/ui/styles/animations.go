// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// DotsSpinner - Trailing dots for the thinking indicator
var DotsSpinner = SpinnerConfig{
	Frames: []string{"   ", ".  ", ".. ", "..."},
	FPS:    3,
}

// LineSpinner - Status bar activity
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns frame n, wrapping around.
func (s SpinnerConfig) Frame(n int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if n < 0 {
		n = -n
	}
	return s.Frames[n%len(s.Frames)]
}

// =============================================================================
// TRANSITION EFFECTS
// =============================================================================

// Phase is one stage of the reply transition.
type Phase int

const (
	PhaseSteady Phase = iota
	PhaseFadeOut
	PhaseHighlight
)

func (p Phase) String() string {
	switch p {
	case PhaseFadeOut:
		return "fade-out"
	case PhaseHighlight:
		return "highlight"
	default:
		return "steady"
	}
}

// TransitionConfig holds the phase durations of a reply transition.
type TransitionConfig struct {
	FadeOut   time.Duration
	Highlight time.Duration
}

// DefaultTransition matches the ui.fade_out and ui.highlight defaults.
var DefaultTransition = TransitionConfig{
	FadeOut:   300 * time.Millisecond,
	Highlight: 500 * time.Millisecond,
}

// Next returns the phase after p and how long it lasts.
// A zero-length phase is skipped.
func (c TransitionConfig) Next(p Phase) (Phase, time.Duration) {
	switch p {
	case PhaseSteady:
		if c.FadeOut > 0 {
			return PhaseFadeOut, c.FadeOut
		}
		fallthrough
	case PhaseFadeOut:
		if c.Highlight > 0 {
			return PhaseHighlight, c.Highlight
		}
	}
	return PhaseSteady, 0
}
