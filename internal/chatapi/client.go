// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	DefaultBaseURL          = "http://127.0.0.1:5000"
	DefaultChatPath         = "/chat"
	DefaultMaxResponseBytes = 1 << 20
)

// ClientConfig holds configuration options for the chat client.
type ClientConfig struct {
	// BaseURL is the chat server root (default: http://127.0.0.1:5000)
	BaseURL string

	// ChatPath is appended to BaseURL for POST requests (default: /chat)
	ChatPath string

	// MaxResponseBytes caps how much of a response body is read (default: 1 MiB)
	MaxResponseBytes int64

	// UserAgent is sent on every request when set
	UserAgent string

	// HTTPClient overrides the transport. Deadlines come from the caller's
	// context, so the default client has no Timeout of its own.
	HTTPClient *http.Client

	// Logger receives debug traces of each request (default: disabled)
	Logger *zerolog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:          DefaultBaseURL,
		ChatPath:         DefaultChatPath,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client posts chat messages to the NeuralPilot server.
//
// The Client is safe for concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	// Fill in defaults for any zero values
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ChatPath == "" {
		cfg.ChatPath = DefaultChatPath
	}
	if !strings.HasPrefix(cfg.ChatPath, "/") {
		cfg.ChatPath = "/" + cfg.ChatPath
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = DefaultMaxResponseBytes
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "chatapi").Logger()
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		log:        logger,
	}
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.config.BaseURL + c.config.ChatPath
}

// HTTPClient returns the underlying transport, shared with page discovery.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one message and returns the server reply.
// Any status outside 200..299 is an error regardless of body.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cerr := classifyTransport(ctx, err)
		c.log.Debug().Err(err).Str("kind", cerr.Type.String()).Dur("elapsed", time.Since(start)).Msg("chat request failed")
		return nil, cerr
	}
	defer resp.Body.Close()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("chat response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &ClientError{
			Type:       ErrTypeStatus,
			Message:    "chat request failed: " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseBytes+1))
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}
	if int64(len(data)) > c.config.MaxResponseBytes {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "response exceeds size limit"}
	}

	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if raw.Response == nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "response field missing"}
	}

	return &ChatResponse{Response: *raw.Response}, nil
}
