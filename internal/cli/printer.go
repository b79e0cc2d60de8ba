// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/MohiCodeHub/NeuralPilot/internal/model"
	"github.com/MohiCodeHub/NeuralPilot/internal/render"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/components"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Sky).
			Bold(true)

	botNameStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	thinkingStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Italic(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
)

// =============================================================================
// ENTRY PRINTER
// =============================================================================

// entryPrinter writes bot entries as they appear in the log. User entries
// are skipped because the terminal already echoed them.
type entryPrinter struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *render.Renderer
}

func newEntryPrinter(w io.Writer, renderer *render.Renderer) *entryPrinter {
	return &entryPrinter{w: w, renderer: renderer}
}

// Observe is a widget.Observer.
func (p *entryPrinter) Observe(ev widget.Event) {
	if ev.Entry.Role != model.RoleBot {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case ev.Kind == widget.EntryAppended && ev.Entry.IsPending():
		fmt.Fprintln(p.w, thinkingStyle.Render(components.ThinkingLabel+"..."))
	default:
		p.printEntry(ev.Entry)
	}
}

func (p *entryPrinter) printEntry(e model.Entry) {
	body := p.renderer.Render(e.Content)
	if e.Failed {
		body = failedStyle.Render(body)
	}
	fmt.Fprintf(p.w, "%s %s\n\n", botNameStyle.Render(e.Role.DisplayName()+":"), body)
}
