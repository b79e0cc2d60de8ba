// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatapi

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the body the server returns on success.
type ChatResponse struct {
	Response string `json:"response"`
}

// rawResponse distinguishes a missing "response" field from an empty one.
type rawResponse struct {
	Response *string `json:"response"`
}
