// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
)

// SendLabel is the visible send control.
const SendLabel = "[Send]"

// SendLabelWidth is the columns the send control takes, including its gap.
const SendLabelWidth = len(SendLabel) + 1

// =============================================================================
// INPUT BAR
// =============================================================================

// InputBar frames the entry field with the send control on its right.
// canSend dims the control while input is empty or a reply is pending.
func InputBar(theme *styles.Theme, field string, width int, canSend bool) string {
	button := theme.SendButtonIdle.Render(SendLabel)
	if canSend {
		button = theme.SendButton.Render(SendLabel)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, field, " ", button)
	return theme.InputContainer.Width(width).Render(row)
}
