// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// Width calculations go through go-runewidth so CJK and emoji take the
// columns the terminal actually gives them.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of a string.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// RuneLen returns the number of runes (characters) in a string.
func RuneLen(s string) int {
	return len([]rune(s))
}

// MaxLineWidth returns the display width of the widest line in text.
func MaxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// WordWrap wraps text at word boundaries so no line exceeds width columns.
// Existing newlines are kept. Words wider than width are hard-broken.
func WordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := ""
		currentWidth := 0
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if currentWidth > 0 {
					result.WriteString(current)
					result.WriteString("\n")
					current, currentWidth = "", 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// Single rune wider than the line.
					head = string([]rune(word)[:1])
				}
				result.WriteString(head)
				result.WriteString("\n")
				word = word[len(head):]
			}
			if word == "" {
				continue
			}

			wordWidth := runewidth.StringWidth(word)
			switch {
			case currentWidth == 0:
				current, currentWidth = word, wordWidth
			case currentWidth+1+wordWidth <= width:
				current += " " + word
				currentWidth += 1 + wordWidth
			default:
				result.WriteString(current)
				result.WriteString("\n")
				current, currentWidth = word, wordWidth
			}
		}
		result.WriteString(current)
	}

	return result.String()
}
