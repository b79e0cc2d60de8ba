// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi provides the HTTP client for the NeuralPilot chat endpoint.
//
// The endpoint accepts a JSON body {"message", "session_id"} and answers
// with {"response"}. One call to Chat performs exactly one request; there is
// no retry.
//
// # Errors
//
// Every failure is a *ClientError whose Type says what went wrong:
//
//   - ErrTypeConnection: the request never got a response
//   - ErrTypeTimeout: the context deadline expired
//   - ErrTypeCanceled: the context was canceled
//   - ErrTypeStatus: the server answered outside 200..299
//   - ErrTypeInvalidResponse: the body was not JSON or had no "response"
//
// # Usage
//
//	client := chatapi.NewClientWithConfig(&chatapi.ClientConfig{
//	    BaseURL: "http://localhost:5000",
//	})
//	resp, err := client.Chat(ctx, chatapi.ChatRequest{
//	    Message:   "What is a transformer?",
//	    SessionID: sessionID,
//	})
package chatapi
