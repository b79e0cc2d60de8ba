// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/MohiCodeHub/NeuralPilot/internal/util"
)

// WelcomeMessage is the synthetic greeting that opens every chat log.
const WelcomeMessage = "👋 Welcome to NeuralPilot! I'm your AI research assistant powered by GPT-4 " +
	"and the latest machine learning papers from ArXiv. Ask me anything about ML, AI, deep learning, " +
	"or related topics!"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of an entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "NeuralPilot"
	default:
		return string(r)
	}
}

// =============================================================================
// ENTRY STATE
// =============================================================================

// EntryState is the lifecycle state of an entry.
type EntryState string

const (
	// StatePending marks an entry awaiting the server reply.
	StatePending EntryState = "pending"
	// StateFinal marks an entry whose content will not change again.
	StateFinal EntryState = "final"
)

// String returns the string representation of the state.
func (s EntryState) String() string {
	return string(s)
}

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is a single element of the conversation log.
type Entry struct {
	ID         string     `json:"id"`
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	State      EntryState `json:"state"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt time.Time  `json:"resolved_at,omitempty"`

	// Failed is set when a pending entry resolved to the fallback text.
	Failed bool `json:"failed,omitempty"`
}

func newEntry(role Role, content string, state EntryState) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		State:     state,
		CreatedAt: time.Now(),
	}
}

// IsPending reports whether the entry still awaits resolution.
func (e *Entry) IsPending() bool {
	return e.State == StatePending
}

// Preview returns a truncated preview of the entry content.
func (e *Entry) Preview(maxLen int) string {
	return util.TruncateRunes(e.Content, maxLen)
}

// Latency returns the time between creation and resolution.
// Zero for entries that were never pending or are still pending.
func (e *Entry) Latency() time.Duration {
	if e.ResolvedAt.IsZero() {
		return 0
	}
	return e.ResolvedAt.Sub(e.CreatedAt)
}
