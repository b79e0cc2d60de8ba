// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the chat widget controller.
//
// A Controller owns the conversation log of one session and turns each
// accepted submit into exactly one outbound request:
//
//	req, err := ctrl.Submit(text)   // user entry + pending bot entry
//	res := ctrl.Dispatch(ctx, req)  // one POST, never returns an error
//	entry, _ := ctrl.Resolve(res)   // pending -> final, reply or fallback
//
// Submit and Resolve are quick and may run on a UI loop; Dispatch blocks
// and belongs on a goroutine (a tea.Cmd in the TUI). Send runs all three
// for synchronous callers.
//
// Only one request is in flight at a time. A submit while an entry is
// pending returns ErrBusy and leaves the log untouched.
package widget
