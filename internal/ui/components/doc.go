// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI pieces of the NeuralPilot chat view.

Components are plain values rendered with Lip Gloss; only Thinking carries
Bubble Tea state (its dot animation).

# Components

MessageBubble (message.go) - One log entry. User entries sit on the right,
bot entries on the left, and a pending entry shows the thinking indicator.

Thinking (thinking.go) - "NeuralPilot is thinking" with animated dots.

Header (header.go) - Title line with the session and endpoint.

StatusBar (statusbar.go) - Ready/thinking state, notices and key hints.

InputBar (input.go) - Frames the entry field next to the [Send] control.
*/
package components
