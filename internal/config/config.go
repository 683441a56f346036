// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete devconsole configuration.
type Config struct {
	// Console window settings
	Console ConsoleConfig `toml:"console"`

	// Log output
	Log LogConfig `toml:"log"`

	// Values file applied at start
	Values ValuesConfig `toml:"values"`
}

// ConsoleConfig contains console window settings.
type ConsoleConfig struct {
	// Prompt is echoed before each command in the scrollback
	Prompt string `toml:"prompt"`
	// Banner shows the help hint when a session starts
	Banner bool `toml:"banner"`
	// MaxLines caps the scrollback in spans (0 = unlimited)
	MaxLines int `toml:"max_lines"`
	// Theme is "auto", "dark", "light" or "none"
	Theme string `toml:"theme"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is a zap level name ("debug", "info", "warn", "error") or "off"
	Level string `toml:"level"`
	// File receives JSON log lines (empty = no logging)
	File string `toml:"file"`
}

// ValuesConfig selects a values file for the application tree.
type ValuesConfig struct {
	// File is loaded after the session starts (empty = none)
	File string `toml:"file"`
	// Watch reloads File whenever it changes on disk
	Watch bool `toml:"watch"`
}

// Themes lists the accepted theme names.
var Themes = []string{"auto", "dark", "light", "none"}

// Default returns the default configuration.
func Default() *Config {
	logFile := ""
	if dir, err := ConfigDir(); err == nil {
		logFile = filepath.Join(dir, "devconsole.log")
	}
	return &Config{
		Console: ConsoleConfig{
			Prompt:   " > ",
			Banner:   true,
			MaxLines: 5000,
			Theme:    "auto",
		},
		Log: LogConfig{
			Level: "info",
			File:  logFile,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the devconsole configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".devconsole"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the default path. A missing file yields
// the defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key in %s: %s", path, undecoded[0])
	}
	fillDefaults(cfg)

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in values a file set to empty.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Console.Prompt == "" {
		cfg.Console.Prompt = defaults.Console.Prompt
	}
	if cfg.Console.Theme == "" {
		cfg.Console.Theme = defaults.Console.Theme
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# devconsole configuration file\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
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

	if c.Console.MaxLines < 0 {
		errs = append(errs, ValidationError{
			Field:   "console.max_lines",
			Message: "must not be negative",
		})
	}
	if err := validateTheme(c.Console.Theme); err != nil {
		errs = append(errs, ValidationError{Field: "console.theme", Message: err.Error()})
	}
	if c.Log.Level != "off" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("unknown level %q", c.Log.Level),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateTheme(theme string) error {
	for _, t := range Themes {
		if theme == t {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(Themes, ", "))
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - DEVCONSOLE_LOG_LEVEL: overrides log.level
//   - DEVCONSOLE_VALUES: overrides values.file
//   - DEVCONSOLE_PROMPT: overrides console.prompt
func (c *Config) ApplyEnvOverrides() {
	if level := os.Getenv("DEVCONSOLE_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if file := os.Getenv("DEVCONSOLE_VALUES"); file != "" {
		c.Values.File = file
	}
	if prompt := os.Getenv("DEVCONSOLE_PROMPT"); prompt != "" {
		c.Console.Prompt = prompt
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "log.level").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.field(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) field(key string) (reflect.Value, error) {
	if key == "" {
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
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
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
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %v", err)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
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

// Keys returns every dotted key the configuration accepts.
func Keys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "" {
				name = strings.ToLower(f.Name)
			}
			if f.Type.Kind() == reflect.Struct {
				walk(prefix+name+".", f.Type)
				continue
			}
			keys = append(keys, prefix+name)
		}
	}
	walk("", reflect.TypeOf(Config{}))
	return keys
}

// =============================================================================
// CONSOLE PROPERTIES
// =============================================================================

// Visit exposes the console settings as properties under "console", so
// they can be changed from the console itself. Defaults are the built-in
// ones, not those of the loaded file.
func (c *Config) Visit(f func(console.Node), _ console.Sink) {
	f(console.NewList("console", "Console window settings", console.VisitFunc(c.visitConsole)))
}

func (c *Config) visitConsole(f func(console.Node), _ console.Sink) {
	def := Default().Console
	f(console.Prop("prompt", "Text echoed before each command", &c.Console.Prompt, def.Prompt))
	f(console.Prop("banner", "Show the help hint when a session starts", &c.Console.Banner, def.Banner))
	f(console.NewProperty("max_lines", "Scrollback limit in spans (0 = unlimited)",
		&c.Console.MaxLines, def.MaxLines, maxLinesCodec))
	f(console.NewProperty("theme", "Color theme: "+strings.Join(Themes, ", "),
		&c.Console.Theme, def.Theme, themeCodec))
}

var maxLinesCodec = console.CodecFunc[int]{
	ParseFunc: func(s string) (int, error) {
		n, err := console.ScalarCodec[int]().Parse(s)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, errors.New("must not be negative")
		}
		return n, nil
	},
	FormatFunc: console.ScalarCodec[int]().Format,
}

var themeCodec = console.CodecFunc[string]{
	ParseFunc: func(s string) (string, error) {
		s = strings.ToLower(s)
		if err := validateTheme(s); err != nil {
			return "", err
		}
		return s, nil
	},
	FormatFunc: func(s string) string { return s },
}
