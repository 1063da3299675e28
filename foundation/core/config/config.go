// File: config.go
// Title: Configuration Management
// Description: Loads TOML or YAML configuration files into a nested key space
//              addressed with dotted keys. Environment variables override file
//              values (prefix + upper-cased key with dots replaced by
//              underscores). Defaults are merged below file values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with TOML/YAML and env overrides
// - 2026-10-18 v0.2.0: Deep default merge, fsnotify based watching

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	mdwstringx "github.com/msto63/numerik/foundation/utils/stringx"
)

// Format is the serialization format of a configuration source
type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

// String returns the name of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// Config holds a parsed configuration. It is safe for concurrent use.
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	defaults  map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
	handlers  []ChangeHandler
	lookupEnv func(string) (string, bool)
}

// ChangeHandler is called after a successful reload
type ChangeHandler func(oldConfig, newConfig *Config)

// LoadOptions control how a configuration file is loaded
type LoadOptions struct {
	Format    Format
	EnvPrefix string
	Defaults  map[string]interface{}
}

// Load loads configuration from a file, detecting the format by extension
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if mdwstringx.IsBlank(filePath) {
		return nil, mdwerror.New("config file path cannot be empty").
			WithCode(mdwerror.CodeValidationFailed).
			WithOperation("config.LoadWithOptions")
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerrors.NewErrorBuilder(mdwerrors.ModuleConfig).
				Operation("load").
				Code(mdwerrors.CodeConfigNotFound).
				Messagef("config file not found: %s", filePath).
				Detail("filePath", filePath).
				Build()
		}
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config file").
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}

	return &Config{
		data:      data,
		defaults:  options.Defaults,
		filePath:  filePath,
		format:    format,
		envPrefix: options.EnvPrefix,
		lookupEnv: os.LookupEnv,
	}, nil
}

// LoadFromString loads configuration from a string with specified format
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config from string").
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}
	return &Config{data: data, format: format, lookupEnv: os.LookupEnv}, nil
}

// NewFromMap builds a configuration from in-memory values
func NewFromMap(data map[string]interface{}, envPrefix string) *Config {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Config{data: data, envPrefix: envPrefix, lookupEnv: os.LookupEnv}
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(content, &data)
	case FormatYAML:
		err = yaml.Unmarshal(content, &data)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, mdwerrors.NewErrorBuilder(mdwerrors.ModuleConfig).
			Operation("parse").
			Code(mdwerrors.CodeConfigParseFailed).
			Cause(err).
			Messagef("%s parse error", format).
			Build()
	}
	if data == nil {
		data = make(map[string]interface{})
	}
	return data, nil
}

// GetString returns a string value, checking the environment first
func (c *Config) GetString(key string, defaultValue ...string) string {
	if env, ok := c.env(key); ok {
		return env
	}
	if v := c.value(key); v != nil {
		return fmt.Sprint(v)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt returns an int value
func (c *Config) GetInt(key string, defaultValue ...int) int {
	fallback := 0
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}
	if env, ok := c.env(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(env)); err == nil {
			return n
		}
		return fallback
	}
	switch v := c.value(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// GetBool returns a bool value
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	fallback := false
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}
	raw := c.value(key)
	if env, ok := c.env(key); ok {
		raw = env
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

// GetDuration returns a duration value. Strings use time.ParseDuration,
// numbers are seconds.
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	var fallback time.Duration
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}
	raw := c.value(key)
	if env, ok := c.env(key); ok {
		raw = env
	}
	switch v := raw.(type) {
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	return fallback
}

// GetStringSlice returns a list value; environment values are comma separated
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	if env, ok := c.env(key); ok {
		var out []string
		for _, part := range strings.Split(env, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	if list, ok := c.value(key).([]interface{}); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// Has reports whether key is set in the file, the defaults or the environment
func (c *Config) Has(key string) bool {
	if _, ok := c.env(key); ok {
		return true
	}
	return c.value(key) != nil
}

// Set sets a value at runtime (not persisted)
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := strings.Split(key, ".")
	current := c.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// Keys returns all leaf keys in dotted form, sorted
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			full := k
			if prefix != "" {
				full = prefix + "." + k
			}
			if nested, ok := v.(map[string]interface{}); ok {
				walk(full, nested)
				continue
			}
			keys = append(keys, full)
		}
	}
	walk("", c.data)
	sort.Strings(keys)
	return keys
}

// FilePath returns the file the configuration was loaded from
func (c *Config) FilePath() string { return c.filePath }

// Format returns the format of the configuration source
func (c *Config) Format() Format { return c.format }

// OnChange registers a handler invoked after each successful reload
func (c *Config) OnChange(handler ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

func (c *Config) value(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v := lookup(c.data, key); v != nil {
		return v
	}
	return lookup(c.defaults, key)
}

func (c *Config) env(key string) (string, bool) {
	if c.lookupEnv == nil {
		return "", false
	}
	v, ok := c.lookupEnv(c.formatEnvKey(key))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// formatEnvKey converts engine.scale to ENGINE_SCALE, prefixed when configured
func (c *Config) formatEnvKey(key string) string {
	envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if c.envPrefix != "" {
		envKey = strings.ToUpper(c.envPrefix) + "_" + envKey
	}
	return envKey
}

func lookup(data map[string]interface{}, key string) interface{} {
	if data == nil {
		return nil
	}
	if v, ok := data[key]; ok {
		return v
	}
	parts := strings.Split(key, ".")
	current := data
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}
		next, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}
