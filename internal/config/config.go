// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/MohiCodeHub/NeuralPilot/internal/model"
	"github.com/MohiCodeHub/NeuralPilot/internal/util"
)

// DefaultWelcomeMessage is the greeting seeded into every new chat log.
const DefaultWelcomeMessage = model.WelcomeMessage

// Render modes for bot and user content.
const (
	RenderText     = "text"
	RenderMarkdown = "markdown"
	RenderRaw      = "raw"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete NeuralPilot configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Chat server
	Server ServerConfig `toml:"server" json:"server"`

	// Session identifier
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Diagnostic log
	Log LogConfig `toml:"log" json:"log"`
}

// ServerConfig locates the chat endpoint.
type ServerConfig struct {
	// BaseURL is the server root, e.g. http://127.0.0.1:5000
	BaseURL string `toml:"base_url" json:"base_url"`
	// ChatPath is the POST endpoint path
	ChatPath string `toml:"chat_path" json:"chat_path"`
	// PagePath is the chat page GET for session discovery
	PagePath string `toml:"page_path" json:"page_path"`
	// RequestTimeout bounds each outbound request
	RequestTimeout Duration `toml:"request_timeout" json:"request_timeout"`
	// MaxResponseBytes caps the response body read
	MaxResponseBytes int64 `toml:"max_response_bytes" json:"max_response_bytes"`
}

// SessionConfig holds a fixed session identifier.
type SessionConfig struct {
	// ID, when set, skips page discovery
	ID string `toml:"id" json:"id"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// WelcomeMessage is the first bot entry of every session
	WelcomeMessage string `toml:"welcome_message" json:"welcome_message"`
	// RenderMode is one of "text", "markdown", "raw"
	RenderMode string `toml:"render_mode" json:"render_mode"`
	// InputMaxRows caps auto-growth of the entry box
	InputMaxRows int `toml:"input_max_rows" json:"input_max_rows"`
	// FadeOut is the first phase of the reply transition
	FadeOut Duration `toml:"fade_out" json:"fade_out"`
	// Highlight is the second phase of the reply transition
	Highlight Duration `toml:"highlight" json:"highlight"`
	// ShowTimestamps prints entry times in the message list
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// HistoryFile stores plain mode line history
	HistoryFile string `toml:"history_file" json:"history_file"`
}

// LogConfig configures the diagnostic channel.
type LogConfig struct {
	// Path of the JSON log file; empty means ~/.neuralpilot/neuralpilot.log
	Path string `toml:"path" json:"path"`
	// Level is a zerolog level name
	Level string `toml:"level" json:"level"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",

		Server: ServerConfig{
			BaseURL:          "http://127.0.0.1:5000",
			ChatPath:         "/chat",
			PagePath:         "/chat",
			RequestTimeout:   Duration(60 * time.Second),
			MaxResponseBytes: 1 << 20,
		},

		UI: UIConfig{
			Theme:          "dark",
			WelcomeMessage: DefaultWelcomeMessage,
			RenderMode:     RenderText,
			InputMaxRows:   5,
			FadeOut:        Duration(300 * time.Millisecond),
			Highlight:      Duration(500 * time.Millisecond),
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the NeuralPilot configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".neuralpilot"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// LogPath returns the effective diagnostic log path.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "neuralpilot.log"), nil
}

// HistoryPath returns the effective plain mode history path.
func (c *Config) HistoryPath() (string, error) {
	if c.UI.HistoryFile != "" {
		return c.UI.HistoryFile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	for _, candidate := range []struct {
		pathFn func() (string, error)
		load   func(*Config, string) error
		kind   string
	}{
		{ConfigPathTOML, LoadTOML, "TOML"},
		{ConfigPathJSON, LoadJSON, "JSON"},
	} {
		path, err := candidate.pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		fileCfg := Default()
		if err := candidate.load(fileCfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load %s config: %w", candidate.kind, err)
			continue
		}
		return finish(fileCfg)
	}

	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// Determine file type and load accordingly
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# NeuralPilot configuration file\n")
	buf.WriteString("# Generated by neuralpilot - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Server
	// ==========================================================================

	if u, err := url.Parse(c.Server.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("'%s' must be an absolute http or https URL", c.Server.BaseURL),
		})
	}

	for field, p := range map[string]string{
		"server.chat_path": c.Server.ChatPath,
		"server.page_path": c.Server.PagePath,
	} {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("'%s' must start with '/'", p),
			})
		}
	}

	if c.Server.RequestTimeout <= 0 || c.Server.RequestTimeout.Std() > 10*time.Minute {
		errs = append(errs, ValidationError{
			Field:   "server.request_timeout",
			Message: fmt.Sprintf("%s out of range (must be > 0 and <= 10m)", c.Server.RequestTimeout),
		})
	}

	if c.Server.MaxResponseBytes <= 0 {
		errs = append(errs, ValidationError{
			Field:   "server.max_response_bytes",
			Message: "must be positive",
		})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	validModes := map[string]bool{RenderText: true, RenderMarkdown: true, RenderRaw: true}
	if !validModes[strings.ToLower(c.UI.RenderMode)] {
		errs = append(errs, ValidationError{
			Field:   "ui.render_mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: text, markdown, raw", c.UI.RenderMode),
		})
	}

	if c.UI.InputMaxRows < 1 || c.UI.InputMaxRows > 20 {
		errs = append(errs, ValidationError{
			Field:   "ui.input_max_rows",
			Message: fmt.Sprintf("%d out of range (1-20)", c.UI.InputMaxRows),
		})
	}

	for field, d := range map[string]Duration{"ui.fade_out": c.UI.FadeOut, "ui.highlight": c.UI.Highlight} {
		if d < 0 || d.Std() > 5*time.Second {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s out of range (0-5s)", d),
			})
		}
	}

	// ==========================================================================
	// Log
	// ==========================================================================

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil || c.Log.Level == "" {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	// Server defaults
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.ChatPath == "" {
		c.Server.ChatPath = defaults.Server.ChatPath
	}
	if c.Server.PagePath == "" {
		c.Server.PagePath = defaults.Server.PagePath
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaults.Server.RequestTimeout
	}
	if c.Server.MaxResponseBytes == 0 {
		c.Server.MaxResponseBytes = defaults.Server.MaxResponseBytes
	}

	// UI defaults
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.WelcomeMessage == "" {
		c.UI.WelcomeMessage = defaults.UI.WelcomeMessage
	}
	c.UI.RenderMode = strings.ToLower(c.UI.RenderMode)
	if c.UI.RenderMode == "" {
		c.UI.RenderMode = defaults.UI.RenderMode
	}
	if c.UI.InputMaxRows == 0 {
		c.UI.InputMaxRows = defaults.UI.InputMaxRows
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - NEURALPILOT_SERVER: overrides server.base_url
//   - NEURALPILOT_SESSION_ID: overrides session.id
//   - NEURALPILOT_TIMEOUT: overrides server.request_timeout ("45s" or "45")
//   - NEURALPILOT_RENDER: overrides ui.render_mode
//   - NEURALPILOT_LOG_LEVEL: overrides log.level
//   - NEURALPILOT_LOG_FILE: overrides log.path
func (c *Config) ApplyEnvOverrides() error {
	if server := os.Getenv("NEURALPILOT_SERVER"); server != "" {
		c.Server.BaseURL = server
	}

	if id := os.Getenv("NEURALPILOT_SESSION_ID"); id != "" {
		c.Session.ID = id
	}

	if timeout := os.Getenv("NEURALPILOT_TIMEOUT"); timeout != "" {
		d, err := ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("NEURALPILOT_TIMEOUT: %w", err)
		}
		c.Server.RequestTimeout = d
	}

	if mode := os.Getenv("NEURALPILOT_RENDER"); mode != "" {
		c.UI.RenderMode = mode
	}

	if level := os.Getenv("NEURALPILOT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if path := os.Getenv("NEURALPILOT_LOG_FILE"); path != "" {
		c.Log.Path = path
	}

	return nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "server.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.render_mode").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

var durationType = reflect.TypeOf(Duration(0))

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		if field.Type() == durationType {
			d, err := ParseDuration(strVal)
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(d))
			return nil
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"server.base_url",
		"server.chat_path",
		"server.page_path",
		"server.request_timeout",
		"server.max_response_bytes",
		"session.id",
		"ui.theme",
		"ui.welcome_message",
		"ui.render_mode",
		"ui.input_max_rows",
		"ui.fade_out",
		"ui.highlight",
		"ui.show_timestamps",
		"ui.history_file",
		"log.path",
		"log.level",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access unless SetGlobal ran first. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		globalConfigMu.Lock()
		defer globalConfigMu.Unlock()
		if globalConfig != nil {
			return
		}
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
