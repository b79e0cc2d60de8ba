// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "config.json")
	data := []byte(`{"server":{}}`)

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_FailureLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(target, []byte("data"), 0600); err == nil {
		t.Fatal("expected error replacing a directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "taken" {
		t.Errorf("temp file left behind: %v", entries)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	if err := AtomicWriteFile(path, []byte("initial"), 0600); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0600); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", string(content))
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	testCases := []struct {
		input    string
		maxRunes int
		expected string
	}{
		{"hello world", 5, "he..."},
		{"hello", 5, "hello"},
		{"", 5, ""},
		{"hello world", 0, ""},
		{"abcd", 3, "abc"}, // When maxRunes <= 3, no ellipsis is added
		{"日本語テキスト", 5, "日本..."},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := TruncateRunes(tc.input, tc.maxRunes)
			if result != tc.expected {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q",
					tc.input, tc.maxRunes, result, tc.expected)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"hello", 5},
		{"", 0},
		{"日本語", 6},
		{"hello世界", 9},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := StringWidth(tc.input); got != tc.expected {
				t.Errorf("StringWidth(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := TruncateWidth("hello world", 8); got != "hello..." {
		t.Errorf("TruncateWidth = %q, want %q", got, "hello...")
	}
	if got := TruncateWidth("日本語", 4); StringWidth(got) > 4 {
		t.Errorf("TruncateWidth(CJK) = %q exceeds width 4", got)
	}
	if got := TruncateWidth("hello", 0); got != "" {
		t.Errorf("zero width should be empty, got %q", got)
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := MaxLineWidth("ab\nabcd\nabc"); got != 4 {
		t.Errorf("MaxLineWidth = %d, want 4", got)
	}
	if got := MaxLineWidth(""); got != 0 {
		t.Errorf("MaxLineWidth(empty) = %d, want 0", got)
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "What is backprop?", 40, "What is backprop?"},
		{"wraps at words", "the quick brown fox", 10, "the quick\nbrown fox"},
		{"keeps newlines", "one\ntwo three", 20, "one\ntwo three"},
		{"blank line kept", "a\n\nb", 5, "a\n\nb"},
		{"hard break long word", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"zero width untouched", "abc def", 0, "abc def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("WordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWordWrap_NoLineExceedsWidth(t *testing.T) {
	text := strings.Repeat("backpropagation computes gradients 梯度下降 ", 10)
	for _, line := range strings.Split(WordWrap(text, 12), "\n") {
		if StringWidth(line) > 12 {
			t.Errorf("line %q exceeds width 12", line)
		}
	}
}
