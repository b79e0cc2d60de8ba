// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"github.com/pkg/errors"

	"github.com/MohiCodeHub/NeuralPilot/internal/model"
)

// FallbackMessage replaces the pending entry when a request fails.
const FallbackMessage = "Sorry, I encountered an error. Please try again."

var (
	// ErrNoSession is returned by New when the session id is blank.
	ErrNoSession = errors.New("session id is required")
	// ErrNoSender is returned by New without a Sender.
	ErrNoSender = errors.New("sender is required")
	// ErrEmptyInput is returned by Submit for blank text.
	ErrEmptyInput = errors.New("message is empty")
	// ErrBusy is returned by Submit while a reply is pending.
	ErrBusy = errors.New("a reply is still pending")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("controller closed")
	// ErrAlreadyDispatched marks a Request passed to Dispatch twice.
	ErrAlreadyDispatched = errors.New("request already dispatched")

	ErrUnknownEntry    = model.ErrUnknownEntry
	ErrAlreadyResolved = model.ErrAlreadyResolved
)
