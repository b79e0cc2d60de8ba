// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/MohiCodeHub/NeuralPilot/internal/ui/components"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
)

// Layout: header (1) + viewport + input bar (border + rows) + status bar (1).
const (
	headerHeight    = 1
	inputChrome     = 1
	statusBarHeight = 1
)

// layout sizes every component for a width x height terminal.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.header.Width = width
	m.status.SetWidth(width)

	inputWidth := width - 2 - components.SendLabelWidth
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.SetWidth(inputWidth)
	m.input.SetHeight(m.inputRows())

	vpHeight := height - headerHeight - inputChrome - m.input.Height() - statusBarHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight

	m.renderer.SetWidth(styles.BubbleWidth(width) - 4)
}

// inputRows grows the entry field with its content up to maxRows.
func (m *Model) inputRows() int {
	rows := m.input.LineCount()
	if rows < 1 {
		rows = 1
	}
	if rows > m.maxRows {
		rows = m.maxRows
	}
	return rows
}

// refresh redraws the message list from a controller snapshot.
func (m *Model) refresh(toBottom bool) {
	switch {
	case m.ctrl.Closed():
		m.status.Status = components.StatusClosed
	case m.ctrl.Busy():
		m.status.Status = components.StatusThinking
	default:
		m.status.Status = components.StatusReady
	}

	content := components.RenderLog(
		m.ctrl.Snapshot(),
		m.viewport.Width,
		m.thinking.Dots(),
		m.showTimestamps,
		m.Phase,
		m.theme,
		m.renderer,
	)
	m.viewport.SetContent(content)
	if toBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderChat() string {
	canSend := strings.TrimSpace(m.input.Value()) != "" && !m.ctrl.Busy()

	return strings.Join([]string{
		m.header.View(),
		m.viewport.View(),
		components.InputBar(m.theme, m.input.View(), m.width, canSend),
		m.status.View(),
	}, "\n")
}
