// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns chat content into terminal-safe text.
//
// Modes:
//
//   - text: markup stripped, entities decoded (default)
//   - markdown: as text, then rendered with glamour
//   - raw: verbatim
//
// Every mode removes terminal control sequences, so a reply can never move
// the cursor, retitle the window or change colours on its own.
package render

import (
	"html"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

// Mode selects how content is rendered.
type Mode string

const (
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeRaw      Mode = "raw"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeMarkdown, ModeRaw:
		return m, nil
	case "":
		return ModeText, nil
	default:
		return "", errors.Errorf("unknown render mode %q", s)
	}
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer applies a Mode to chat content. Safe for concurrent use.
type Renderer struct {
	mode  Mode
	style string

	mu       sync.Mutex
	width    int
	markdown *glamour.TermRenderer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width for markdown output.
func WithWidth(width int) Option {
	return func(r *Renderer) { r.width = width }
}

// WithStyle selects the glamour style ("dark", "light", "notty", "auto").
func WithStyle(style string) Option {
	return func(r *Renderer) { r.style = style }
}

// New creates a Renderer for the given mode.
func New(mode Mode, opts ...Option) *Renderer {
	r := &Renderer{mode: mode, style: "dark", width: 80}
	for _, opt := range opts {
		opt(r)
	}
	if r.mode == "" {
		r.mode = ModeText
	}
	return r
}

// Mode returns the renderer's mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// SetWidth changes the markdown wrap width.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width != r.width {
		r.width = width
		r.markdown = nil
	}
}

// Render converts content for display. It never fails; a markdown error
// falls back to text mode output.
func (r *Renderer) Render(content string) string {
	switch r.mode {
	case ModeRaw:
		return StripControl(content)
	case ModeMarkdown:
		text := Sanitize(content)
		out, err := r.renderMarkdown(text)
		if err != nil {
			return text
		}
		return out
	default:
		return Sanitize(content)
	}
}

func (r *Renderer) renderMarkdown(text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.markdown == nil {
		styleOpt := glamour.WithStandardStyle(r.style)
		if r.style == "auto" {
			styleOpt = glamour.WithAutoStyle()
		}
		md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(r.width))
		if err != nil {
			return "", errors.Wrap(err, "create markdown renderer")
		}
		r.markdown = md
	}

	out, err := r.markdown.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// =============================================================================
// SANITIZING
// =============================================================================

var strict = bluemonday.StrictPolicy()

// Sanitize strips markup and control sequences and decodes entities.
// Control characters are stripped again after decoding, since entities
// such as &#27; decode to them.
func Sanitize(content string) string {
	cleaned := strict.Sanitize(StripControl(content))
	return StripControl(html.UnescapeString(cleaned))
}

// StripControl removes ANSI escape sequences and other control characters,
// keeping newlines and tabs.
func StripControl(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
