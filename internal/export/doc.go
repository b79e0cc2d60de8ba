// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to disk.
//
// A Transcript is a frozen copy of the final entries of one session.
// Exporters turn it into bytes:
//
//   - MarkdownExporter: YAML front matter followed by one section per entry
//   - JSONExporter: the transcript as indented JSON
//
// ExportToFile picks a file name from the session and the current time;
// WriteFile writes to an explicit path and chooses the format from its
// extension.
package export
