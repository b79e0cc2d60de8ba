// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires configuration, logging, session resolution and the chat
// widget controller into the neuralpilot command.
//
// # Commands
//
//   - neuralpilot [tui]: full-screen chat (default on a terminal)
//   - neuralpilot plain: line-oriented chat (default when stdout is piped)
//   - neuralpilot ask TEXT: one question, one reply
//   - neuralpilot config show|path|init|get|set|keys
//   - neuralpilot version
//
// Initialization errors (no session id, invalid config) exit with status 1
// before any request is sent. Request failures never change the exit
// status; the user sees the fallback reply and the cause goes to the log.
package cli
