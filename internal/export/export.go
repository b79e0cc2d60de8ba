// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/MohiCodeHub/NeuralPilot/internal/model"
	"github.com/MohiCodeHub/NeuralPilot/internal/util"
)

// ErrEmpty is returned when a transcript has nothing to write.
var ErrEmpty = errors.New("transcript has no entries")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exportable view of a chat log.
type Transcript struct {
	SessionID  string        `json:"session_id"`
	ExportedAt time.Time     `json:"exported_at"`
	Entries    []model.Entry `json:"entries"`
}

// NewTranscript copies the final entries of a snapshot. Pending entries
// are left out because their content is not known yet.
func NewTranscript(sessionID string, entries []model.Entry) *Transcript {
	t := &Transcript{SessionID: sessionID, ExportedAt: time.Now()}
	for i := range entries {
		if entries[i].IsPending() {
			continue
		}
		t.Entries = append(t.Entries, entries[i])
	}
	return t
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a transcript to one file format.
type Exporter interface {
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the extension including the dot.
	FileExtension() string
}

// ForPath picks an exporter from the extension of path. Anything other
// than .json gets markdown.
func ForPath(path string) Exporter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONExporter()
	}
	return NewMarkdownExporter(nil)
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile writes t into dir under a generated name and returns the path.
func ExportToFile(t *Transcript, exporter Exporter, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("neuralpilot_%s_%s%s",
		sanitizeFilename(t.SessionID),
		t.ExportedAt.Format("20060102_150405"),
		exporter.FileExtension(),
	)
	path := filepath.Join(dir, name)
	return path, write(t, exporter, path)
}

// WriteFile writes t to path in the format its extension names.
func WriteFile(t *Transcript, path string) error {
	return write(t, ForPath(path), path)
}

func write(t *Transcript, exporter Exporter, path string) error {
	content, err := exporter.Export(t)
	if err != nil {
		return errors.Wrap(err, "export failed")
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return errors.Wrap(err, "write transcript")
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in file names.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(s, 40)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "session"
	}
	return b.String()
}
