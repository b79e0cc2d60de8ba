// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MohiCodeHub/NeuralPilot/internal/render"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/components"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// Options configures the chat view.
type Options struct {
	Theme          *styles.Theme
	Renderer       *render.Renderer
	InputMaxRows   int
	Transition     styles.TransitionConfig
	ShowTimestamps bool
	Endpoint       string
	// ExportDir receives saved transcripts; empty means the working directory.
	ExportDir string
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl     *widget.Controller
	theme    *styles.Theme
	renderer *render.Renderer
	keys     KeyMap

	input    textarea.Model
	viewport viewport.Model
	header   *components.Header
	status   *components.StatusBar
	thinking components.Thinking

	transition styles.TransitionConfig
	phases     map[string]styles.Phase

	maxRows        int
	showTimestamps bool
	exportDir      string
	width          int
	height         int

	noticeSeq int
	quitting  bool
}

// New creates a chat view bound to ctrl.
func New(ctrl *widget.Controller, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New(render.ModeText)
	}
	maxRows := opts.InputMaxRows
	if maxRows < 1 {
		maxRows = 1
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = theme.InputHint
	ta.Focus()

	vp := viewport.New(80, 20)

	status := components.NewStatusBar(theme)
	status.Endpoint = opts.Endpoint

	m := Model{
		ctrl:           ctrl,
		theme:          theme,
		renderer:       renderer,
		keys:           DefaultKeyMap(),
		input:          ta,
		viewport:       vp,
		header:         components.NewHeader(theme, ctrl.SessionID()),
		status:         status,
		thinking:       components.NewThinking(theme),
		transition:     opts.Transition,
		phases:         make(map[string]styles.Phase),
		maxRows:        maxRows,
		showTimestamps: opts.ShowTimestamps,
		exportDir:      opts.ExportDir,
	}
	m.layout(80, 24)
	m.refresh(true)
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// View renders the chat view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderChat()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Controller returns the bound controller.
func (m Model) Controller() *widget.Controller {
	return m.ctrl
}

// InputValue returns the current entry field text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Phase returns the transition phase of an entry.
func (m Model) Phase(entryID string) styles.Phase {
	return m.phases[entryID]
}
