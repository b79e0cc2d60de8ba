// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session finds the chat session identifier.
//
// The server issues the identifier when it renders the chat page, as
//
//	<meta name="session-id" content="...">
//
// Discover fetches that page and reads the tag. Resolve picks the first
// non-empty value from an explicit flag, the environment, the config file
// and finally page discovery.
//
// # Usage
//
//	id, src, err := session.Resolve(ctx, session.Sources{
//	    Flag:   flagValue,
//	    Env:    os.Getenv("NEURALPILOT_SESSION_ID"),
//	    Config: cfg.Session.ID,
//	    Discover: func(ctx context.Context) (string, error) {
//	        return session.Discover(ctx, httpClient, pageURL)
//	    },
//	})
package session
