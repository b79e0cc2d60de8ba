// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/MohiCodeHub/NeuralPilot/internal/chatapi"
	"github.com/MohiCodeHub/NeuralPilot/internal/config"
	"github.com/MohiCodeHub/NeuralPilot/internal/logging"
	"github.com/MohiCodeHub/NeuralPilot/internal/render"
	"github.com/MohiCodeHub/NeuralPilot/internal/session"
	"github.com/MohiCodeHub/NeuralPilot/internal/widget"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// loadConfig reads the config file, applies flag overrides and validates.
// Flags beat environment, which beats the file.
func loadConfig(flags *rootFlags, stderr io.Writer) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFromPath(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
	}

	if flags.server != "" {
		cfg.Server.BaseURL = flags.server
	}
	if flags.sessionID != "" {
		cfg.Session.ID = flags.sessionID
	}
	if flags.logFile != "" {
		cfg.Log.Path = flags.logFile
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.render != "" {
		cfg.UI.RenderMode = flags.render
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

// =============================================================================
// APP
// =============================================================================

// app is everything a chat front end needs.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	client   *chatapi.Client
	ctrl     *widget.Controller
	renderer *render.Renderer
	source   session.Source
}

// appOptions tweaks newApp for a front end.
type appOptions struct {
	// glamourStyle is the markdown style; "" picks one from ui.theme.
	glamourStyle string
	// width is the markdown wrap width.
	width int
	// httpClient overrides the transport (tests).
	httpClient *http.Client
}

// newApp loads configuration, opens the log, resolves the session and
// builds the controller. A missing session id is fatal.
func newApp(ctx context.Context, flags *rootFlags, stderr io.Writer, opts appOptions) (*app, error) {
	cfg, err := loadConfig(flags, stderr)
	if err != nil {
		return nil, err
	}

	log := openLog(cfg, stderr)

	client := chatapi.NewClientWithConfig(&chatapi.ClientConfig{
		BaseURL:          cfg.Server.BaseURL,
		ChatPath:         cfg.Server.ChatPath,
		MaxResponseBytes: cfg.Server.MaxResponseBytes,
		UserAgent:        "neuralpilot/" + Version,
		HTTPClient:       opts.httpClient,
		Logger:           &log.Logger,
	})

	id, source, err := session.Resolve(ctx, session.Sources{
		Flag:   flags.sessionID,
		Env:    os.Getenv("NEURALPILOT_SESSION_ID"),
		Config: cfg.Session.ID,
		Discover: func(ctx context.Context) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout.Std())
			defer cancel()
			return session.Discover(ctx, client.HTTPClient(), cfg.Server.BaseURL+cfg.Server.PagePath)
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("session identifier not resolved")
	} else {
		log.Debug().Str("source", string(source)).Msg("session identifier resolved")
	}

	ctrl, err := widget.New(id, client,
		widget.WithLogger(log.Logger),
		widget.WithTimeout(cfg.Server.RequestTimeout.Std()),
		widget.WithWelcome(cfg.UI.WelcomeMessage),
	)
	if err != nil {
		_ = log.Close()
		if errors.Is(err, widget.ErrNoSession) {
			return nil, errors.Wrap(err, "set --session-id, NEURALPILOT_SESSION_ID or session.id, or serve a session-id meta tag")
		}
		return nil, err
	}

	mode, err := render.ParseMode(cfg.UI.RenderMode)
	if err != nil {
		mode = render.ModeText
	}
	style := opts.glamourStyle
	if style == "" {
		style = cfg.UI.Theme
	}
	width := opts.width
	if width <= 0 {
		width = DefaultTerminalWidth
	}

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		ctrl:     ctrl,
		renderer: render.New(mode, render.WithStyle(style), render.WithWidth(width)),
		source:   source,
	}, nil
}

// Close shuts the controller down and flushes the log.
func (a *app) Close() {
	a.ctrl.Close()
	_ = a.log.Close()
}

// openLog opens the diagnostic log file. Failure falls back to stderr so
// diagnostics are never lost silently.
func openLog(cfg *config.Config, stderr io.Writer) *logging.Logger {
	path, err := cfg.LogPath()
	if err == nil {
		var log *logging.Logger
		log, err = logging.Open(logging.Options{Path: path, Level: cfg.Log.Level})
		if err == nil {
			return log
		}
	}
	fmt.Fprintf(stderr, "Warning: diagnostic log unavailable: %v\n", err)
	return &logging.Logger{Logger: logging.New(stderr, cfg.Log.Level)}
}
