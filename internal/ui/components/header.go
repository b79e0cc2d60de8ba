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
// HEADER
// =============================================================================

// Header is the title line above the message list.
type Header struct {
	Title     string
	SessionID string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with the default title.
func NewHeader(theme *styles.Theme, sessionID string) *Header {
	return &Header{
		Title:     "NeuralPilot",
		SessionID: sessionID,
		Width:     80,
		theme:     theme,
	}
}

// View renders the header. The session id is shortened to fit.
func (h *Header) View() string {
	title := h.theme.HeaderBrand.Render(h.Title)
	if h.SessionID == "" {
		return h.theme.Header.Render(title)
	}

	room := h.Width - util.StringWidth(h.Title) - 14
	if room < 8 {
		return h.theme.Header.Render(title)
	}
	session := h.theme.StatusMuted.Render("session " + util.TruncateWidth(h.SessionID, room))

	gap := h.Width - lipgloss.Width(title) - lipgloss.Width(session) - 2
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Render(title + strings.Repeat(" ", gap) + session)
}
