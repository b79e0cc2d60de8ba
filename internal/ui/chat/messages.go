// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

// =============================================================================
// MESSAGES
// =============================================================================

// replyMsg carries a finished dispatch back to the update loop.
type replyMsg struct {
	result widget.Result
}

// transitionMsg ends the current phase of an entry's reply transition.
type transitionMsg struct {
	entryID string
	phase   styles.Phase
}

// noticeExpiredMsg clears a status notice unless a newer one replaced it.
type noticeExpiredMsg struct {
	seq int
}

// noticeTTL is how long a status notice stays visible.
const noticeTTL = 3 * time.Second

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// dispatchCmd runs the request off the update loop. The controller owns
// the deadline and cancellation.
func dispatchCmd(ctrl *widget.Controller, req widget.Request) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{result: ctrl.Dispatch(context.Background(), req)}
	}
}

func transitionCmd(entryID string, phase styles.Phase, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return transitionMsg{entryID: entryID, phase: phase}
	})
}

func noticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
