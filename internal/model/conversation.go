// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownEntry is returned when an entry id is not in the log.
	ErrUnknownEntry = errors.New("unknown entry")
	// ErrAlreadyResolved is returned when a Final entry is resolved again.
	ErrAlreadyResolved = errors.New("entry already resolved")
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered chat log of one session.
// It is not safe for concurrent use; the owner serializes access.
type Conversation struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	entries []*Entry
	index   map[string]int
}

// NewConversation creates an empty log bound to a session.
func NewConversation(sessionID string) *Conversation {
	now := time.Now()
	return &Conversation{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
		entries:   make([]*Entry, 0, 16),
		index:     make(map[string]int),
	}
}

// =============================================================================
// ENTRY MANAGEMENT
// =============================================================================

func (c *Conversation) append(e *Entry) *Entry {
	c.index[e.ID] = len(c.entries)
	c.entries = append(c.entries, e)
	c.UpdatedAt = e.CreatedAt
	return e
}

// AppendFinal adds a Final entry and returns a copy of it.
func (c *Conversation) AppendFinal(role Role, content string) Entry {
	return *c.append(newEntry(role, content, StateFinal))
}

// AppendPending adds an empty Pending entry and returns a copy of it.
func (c *Conversation) AppendPending(role Role) Entry {
	return *c.append(newEntry(role, "", StatePending))
}

// Resolve moves a Pending entry to Final, replacing its content.
func (c *Conversation) Resolve(id, content string, failed bool) (Entry, error) {
	i, ok := c.index[id]
	if !ok {
		return Entry{}, errors.Wrapf(ErrUnknownEntry, "resolve %s", id)
	}
	e := c.entries[i]
	if e.State != StatePending {
		return *e, errors.Wrapf(ErrAlreadyResolved, "resolve %s", id)
	}

	e.Content = content
	e.State = StateFinal
	e.Failed = failed
	e.ResolvedAt = time.Now()
	c.UpdatedAt = e.ResolvedAt
	return *e, nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Get returns a copy of the entry with the given id.
func (c *Conversation) Get(id string) (Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return *c.entries[i], true
}

// Pending returns the oldest Pending entry, if any.
func (c *Conversation) Pending() (Entry, bool) {
	for _, e := range c.entries {
		if e.State == StatePending {
			return *e, true
		}
	}
	return Entry{}, false
}

// PendingCount returns the number of Pending entries.
func (c *Conversation) PendingCount() int {
	n := 0
	for _, e := range c.entries {
		if e.State == StatePending {
			n++
		}
	}
	return n
}

// Last returns the newest entry, if any.
func (c *Conversation) Last() (Entry, bool) {
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	return *c.entries[len(c.entries)-1], true
}

// LastByRole returns the newest Final entry from the given role.
func (c *Conversation) LastByRole(role Role) (Entry, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if e := c.entries[i]; e.Role == role && e.State == StateFinal {
			return *e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (c *Conversation) Len() int {
	return len(c.entries)
}

// Snapshot returns a copy of the log in insertion order.
func (c *Conversation) Snapshot() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = *e
	}
	return out
}
