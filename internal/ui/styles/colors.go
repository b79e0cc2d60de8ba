// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Indigo - Brand color, send control, bot name
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// Sky - User highlights
var Sky = lipgloss.AdaptiveColor{Light: "#0284C7", Dark: "#38BDF8"}

// Emerald - Ready state
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Thinking state, highlight border
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - Failed replies
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// SurfaceDim - Status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextFaded is used for a reply while it fades out.
var TextFaded = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#45475A"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User bubble - Blue tones
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Bot bubble - Neutral slate
var BotBubbleBg = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#313244"}
var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#334155", Dark: "#E2E8F0"}
var BotBubbleBorder = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#585B70"}

// Failed bubble - Rose tones
var FailedBubbleFg = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FECACA"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicators pairs every state with a shape so color is never the only cue.
var StatusIndicators = struct {
	Ready    string
	Thinking string
	Failed   string
	Copied   string
}{
	Ready:    "[OK]",
	Thinking: "[..]",
	Failed:   "[X]",
	Copied:   "[+]",
}

// RenderError renders a one-line error with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Render(StatusIndicators.Failed + " " + message)
}
