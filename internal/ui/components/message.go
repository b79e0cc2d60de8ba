// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MohiCodeHub/NeuralPilot/internal/model"
	"github.com/MohiCodeHub/NeuralPilot/internal/render"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
	"github.com/MohiCodeHub/NeuralPilot/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders one log entry.
type MessageBubble struct {
	Entry         model.Entry
	Width         int
	Phase         styles.Phase
	Dots          string
	ShowTimestamp bool

	theme    *styles.Theme
	renderer *render.Renderer
}

// NewMessageBubble creates a bubble for e.
func NewMessageBubble(e model.Entry, theme *styles.Theme, renderer *render.Renderer) *MessageBubble {
	if renderer == nil {
		renderer = render.New(render.ModeText)
	}
	return &MessageBubble{
		Entry:    e,
		Width:    80,
		theme:    theme,
		renderer: renderer,
	}
}

// View renders the bubble. The same entry, phase and width always yield
// the same output.
func (b *MessageBubble) View() string {
	if b.Entry.Role == model.RoleUser {
		return b.renderUser()
	}
	return b.renderBot()
}

func (b *MessageBubble) renderUser() string {
	body := b.theme.UserBubble.Render(b.body(b.Entry.Content))
	head := b.header()

	return lipgloss.JoinVertical(lipgloss.Right,
		lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, head),
		lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, body),
	)
}

func (b *MessageBubble) renderBot() string {
	var body string
	switch {
	case b.Entry.IsPending():
		body = b.theme.BotBubble.Render(RenderThinking(b.theme, b.Dots))
	case b.Phase == styles.PhaseFadeOut:
		// The placeholder fades before the reply is swapped in.
		body = b.theme.FadedBubble.Render(ThinkingLabel)
	case b.Phase == styles.PhaseHighlight:
		body = b.theme.HighlightBubble.Render(b.body(b.Entry.Content))
	case b.Entry.Failed:
		body = b.theme.FailedBubble.Render(b.body(b.Entry.Content))
	default:
		body = b.theme.BotBubble.Render(b.body(b.Entry.Content))
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.header(), body)
}

// body renders and wraps content to fit inside the bubble frame.
func (b *MessageBubble) body(content string) string {
	inner := styles.BubbleWidth(b.Width) - 4 // border + padding
	if inner < 1 {
		inner = 1
	}

	out := b.renderer.Render(content)
	if b.renderer.Mode() == render.ModeMarkdown {
		return out
	}
	return util.WordWrap(strings.TrimRight(out, "\n"), inner)
}

func (b *MessageBubble) header() string {
	label := b.theme.RoleLabel.Render(b.Entry.Role.DisplayName())
	if b.Entry.Failed {
		label += " " + b.theme.ErrorText.Render(styles.StatusIndicators.Failed)
	}
	if b.ShowTimestamp && !b.Entry.CreatedAt.IsZero() {
		label += " " + b.theme.Timestamp.Render(b.Entry.CreatedAt.Format("15:04"))
	}
	return label
}

// RenderLog renders entries top to bottom, separated by blank lines.
// phaseOf returns the transition phase for an entry id.
func RenderLog(entries []model.Entry, width int, dots string, showTimestamps bool,
	phaseOf func(id string) styles.Phase, theme *styles.Theme, renderer *render.Renderer) string {

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		b := NewMessageBubble(e, theme, renderer)
		b.Width = width
		b.Dots = dots
		b.ShowTimestamp = showTimestamps
		if phaseOf != nil {
			b.Phase = phaseOf(e.ID)
		}
		parts = append(parts, b.View())
	}
	return strings.Join(parts, "\n\n")
}
