package guiplatform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Monitor sources understood by the GLFW platform.
const (
	MonitorSourceGLFW = "glfw"
	MonitorSourceX11  = "x11"
)

// Config is the file form of the backend options.
type Config struct {
	ViewportsEnable     bool        `yaml:"viewports_enable"`
	MaxViewports        int         `yaml:"max_viewports"`
	NoMouseCursorChange bool        `yaml:"no_mouse_cursor_change"`
	IndexedDraw         bool        `yaml:"indexed_draw"`
	FocusPolicy         FocusPolicy `yaml:"focus_policy"`
	// MonitorSource selects where the GLFW platform reads monitor work
	// areas from: "glfw" or "x11".
	MonitorSource string `yaml:"monitor_source"`
	Verbose       bool   `yaml:"verbose"`
}

// ValidationError reports an invalid config field.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		FocusPolicy:   FocusPolicyCache,
		MonitorSource: MonitorSourceGLFW,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.MaxViewports < 0 {
		return &ValidationError{Path: "max_viewports", Err: fmt.Errorf("must be >= 0, got %d", c.MaxViewports)}
	}
	switch c.FocusPolicy {
	case FocusPolicyCache, FocusPolicyOS:
	default:
		return &ValidationError{Path: "focus_policy", Err: fmt.Errorf("must be one of: cache, os")}
	}
	switch c.MonitorSource {
	case MonitorSourceGLFW, MonitorSourceX11:
	default:
		return &ValidationError{Path: "monitor_source", Err: fmt.Errorf("must be one of: glfw, x11")}
	}
	return nil
}

// Options converts the config into backend options. Verbose takes effect
// when the options are passed to New.
func (c *Config) Options() []Option {
	return []Option{
		WithVerbose(c.Verbose),
		WithViewports(c.ViewportsEnable),
		WithNoMouseCursorChange(c.NoMouseCursorChange),
		WithMaxViewports(c.MaxViewports),
		WithFocusPolicy(c.FocusPolicy),
		WithIndexedDraw(c.IndexedDraw),
	}
}
