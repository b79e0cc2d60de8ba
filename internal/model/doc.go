// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat log.
//
// # Key Types
//
//   - Entry: Single chat entry with role, content, state and timestamps
//   - Conversation: Append-only, insertion-ordered log of entries
//   - Role: Entry sender (user, bot)
//   - EntryState: Pending or Final
//
// The only mutation the log permits is the in-place transition of a
// Pending entry to Final. Everything else is append.
//
// # Usage
//
//	conv := model.NewConversation(sessionID)
//	conv.AppendFinal(model.RoleBot, welcome)
//	conv.AppendFinal(model.RoleUser, "What is attention?")
//	pending := conv.AppendPending(model.RoleBot)
//	conv.Resolve(pending.ID, reply, false)
package model
