// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/MohiCodeHub/NeuralPilot/internal/model"
	"github.com/MohiCodeHub/NeuralPilot/internal/render"
)

// MarkdownOptions configures the markdown layout.
type MarkdownOptions struct {
	// IncludeMetadata writes the YAML front matter block.
	IncludeMetadata bool
	// IncludeTimestamps adds the entry time to each heading.
	IncludeTimestamps bool
}

// DefaultMarkdownOptions returns the layout used by the chat front ends.
func DefaultMarkdownOptions() *MarkdownOptions {
	return &MarkdownOptions{IncludeMetadata: true, IncludeTimestamps: true}
}

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts as Markdown.
type MarkdownExporter struct {
	options *MarkdownOptions
}

// NewMarkdownExporter creates a Markdown exporter. nil selects the defaults.
func NewMarkdownExporter(opts *MarkdownOptions) *MarkdownExporter {
	if opts == nil {
		opts = DefaultMarkdownOptions()
	}
	return &MarkdownExporter{options: opts}
}

// frontMatter is the YAML header of a markdown transcript.
type frontMatter struct {
	Title     string `yaml:"title"`
	Session   string `yaml:"session"`
	Started   string `yaml:"started,omitempty"`
	Exported  string `yaml:"exported"`
	Entries   int    `yaml:"entries"`
	Failed    int    `yaml:"failed,omitempty"`
	Generator string `yaml:"generator"`
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil || len(t.Entries) == 0 {
		return nil, ErrEmpty
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		header, err := yaml.Marshal(e.frontMatter(t))
		if err != nil {
			return nil, errors.Wrap(err, "encode front matter")
		}
		sb.WriteString("---\n")
		sb.Write(header)
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# NeuralPilot conversation\n\n")

	for i := range t.Entries {
		entry := &t.Entries[i]
		sb.WriteString(e.heading(entry))
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(render.Sanitize(entry.Content)))
		sb.WriteString("\n\n")
		if i < len(t.Entries)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

func (e *MarkdownExporter) frontMatter(t *Transcript) frontMatter {
	fm := frontMatter{
		Title:     "NeuralPilot conversation",
		Session:   t.SessionID,
		Exported:  t.ExportedAt.Format(time.RFC3339),
		Entries:   len(t.Entries),
		Generator: "neuralpilot",
	}
	if first := t.Entries[0].CreatedAt; !first.IsZero() {
		fm.Started = first.Format(time.RFC3339)
	}
	for i := range t.Entries {
		if t.Entries[i].Failed {
			fm.Failed++
		}
	}
	return fm
}

func (e *MarkdownExporter) heading(entry *model.Entry) string {
	label := entry.Role.DisplayName()
	if entry.Failed {
		label += " [X]"
	}
	if e.options.IncludeTimestamps && !entry.CreatedAt.IsZero() {
		return fmt.Sprintf("### %s <sub>%s</sub>", label, entry.CreatedAt.Format("15:04:05"))
	}
	return "### " + label
}
