// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea front end of the NeuralPilot chat widget.

The Model owns no conversation state of its own. Every keystroke that
submits goes through widget.Controller, and the view is redrawn from a
controller snapshot.

# Flow

  - enter or ctrl+s calls Controller.Submit. On success the entry field is
    cleared and Dispatch runs as a tea.Cmd off the update loop.
  - The dispatch result comes back as a replyMsg and is applied with
    Controller.Resolve.
  - A resolved reply then steps through fade-out and highlight phases
    driven by tea.Tick before settling.

# Keys

	enter, ctrl+s   send
	alt+enter       new line
	pgup, pgdown    scroll
	ctrl+y          copy the last reply
	esc             cancel a pending reply, or quit when idle
	ctrl+c          quit
*/
package chat
