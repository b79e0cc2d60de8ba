// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "github.com/MohiCodeHub/NeuralPilot/internal/model"

// EventKind identifies a change to the log.
type EventKind int

const (
	// EntryAppended fires for every new entry, user or pending.
	EntryAppended EventKind = iota
	// EntryResolved fires when a pending entry becomes final.
	EntryResolved
)

func (k EventKind) String() string {
	switch k {
	case EntryAppended:
		return "appended"
	case EntryResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Event describes one change to the log.
type Event struct {
	Kind  EventKind
	Entry model.Entry
}

// Observer receives events in log order, outside the controller lock.
type Observer func(Event)
