// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/MohiCodeHub/NeuralPilot/internal/export"
	"github.com/MohiCodeHub/NeuralPilot/internal/ui/styles"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		return m.handleReply(msg)

	case transitionMsg:
		return m.handleTransition(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.thinking, cmd = m.thinking.Update(msg)
		if m.thinking.Active() {
			m.refresh(false)
		}
		return m, cmd

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.status.Notice = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Busy() {
			if m.ctrl.CancelPending() {
				cmd := m.notify("Canceling request")
				return m, cmd
			}
			return m, nil
		}
		return m.quit()

	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Send):
		return m.submit()

	case key.Matches(msg, m.keys.Newline):
		m.input.InsertString("\n")
		m.layout(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastReply()

	case key.Matches(msg, m.keys.Export):
		return m.saveTranscript()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if rows := m.inputRows(); rows != m.input.Height() {
		m.layout(m.width, m.height)
	}
	return m, cmd
}

// submit hands the entry field to the controller. Empty input is a no-op;
// a busy controller keeps the typed text in place.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.ctrl.Submit(m.input.Value())
	switch {
	case errors.Is(err, widget.ErrEmptyInput):
		return m, nil
	case errors.Is(err, widget.ErrBusy):
		cmd := m.notify("Waiting for the current reply")
		return m, cmd
	case errors.Is(err, widget.ErrClosed):
		cmd := m.notify("Chat is closed")
		return m, cmd
	case err != nil:
		cmd := m.notify(err.Error())
		return m, cmd
	}

	m.input.Reset()
	m.layout(m.width, m.height)
	tick := m.thinking.Start()
	m.refresh(true)

	return m, tea.Batch(dispatchCmd(m.ctrl, req), tick)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	m.thinking.Stop()
	m.quitting = true
	return m, tea.Quit
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	var notice string
	reply, ok := m.ctrl.LastReply()
	switch {
	case !ok || reply == "":
		notice = "No reply to copy"
	default:
		if err := copyToClipboard(reply); err != nil {
			notice = "Copy failed: " + err.Error()
		} else {
			notice = fmt.Sprintf("Copied reply (%d chars)", utf8.RuneCountInString(reply))
		}
	}
	cmd := m.notify(notice)
	return m, cmd
}

// saveTranscript writes the final entries as markdown into the export dir.
func (m Model) saveTranscript() (tea.Model, tea.Cmd) {
	t := export.NewTranscript(m.ctrl.SessionID(), m.ctrl.Snapshot())
	path, err := export.ExportToFile(t, export.NewMarkdownExporter(nil), m.exportDir)
	notice := "Saved transcript to " + path
	if err != nil {
		notice = "Save failed: " + err.Error()
	}
	cmd := m.notify(notice)
	return m, cmd
}

// notify shows a status notice and schedules its expiry.
func (m *Model) notify(text string) tea.Cmd {
	m.noticeSeq++
	m.status.Notice = text
	return noticeCmd(m.noticeSeq)
}

// =============================================================================
// REPLIES AND TRANSITIONS
// =============================================================================

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	entry, err := m.ctrl.Resolve(msg.result)
	if !m.ctrl.Busy() {
		m.thinking.Stop()
	}
	if err != nil {
		m.refresh(true)
		return m, nil
	}

	var cmd tea.Cmd
	if next, d := m.transition.Next(styles.PhaseSteady); next != styles.PhaseSteady {
		m.phases[entry.ID] = next
		cmd = transitionCmd(entry.ID, next, d)
	}
	m.refresh(true)
	return m, cmd
}

// handleTransition advances one entry's phase. Stale ticks are dropped.
func (m Model) handleTransition(msg transitionMsg) (tea.Model, tea.Cmd) {
	if m.phases[msg.entryID] != msg.phase {
		return m, nil
	}

	var cmd tea.Cmd
	next, d := m.transition.Next(msg.phase)
	if next == styles.PhaseSteady {
		delete(m.phases, msg.entryID)
	} else {
		m.phases[msg.entryID] = next
		cmd = transitionCmd(msg.entryID, next, d)
	}
	m.refresh(false)
	return m, cmd
}
