// Package config loads engine configuration from JSON files and the
// environment and maps it onto executor and registry policy.
package config

import (
	"fmt"
	"time"

	"github.com/toolmesh/toolmesh/pkg/executor"
	"github.com/toolmesh/toolmesh/pkg/registry"
)

// Config is the on-disk configuration for the tool engine.
type Config struct {
	Executor ExecutorConfig        `json:"executor" mapstructure:"executor"`
	Logging  LoggingConfig         `json:"logging" mapstructure:"logging"`
	Tools    map[string]ToolConfig `json:"tools" mapstructure:"tools"`
}

// ExecutorConfig holds executor-wide dispatch policy.
type ExecutorConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxRetries     int    `json:"max_retries" mapstructure:"max_retries"`
	Backoff        string `json:"backoff" mapstructure:"backoff"` // fixed, exponential
	BackoffBaseMS  int    `json:"backoff_base_ms" mapstructure:"backoff_base_ms"`
	BackoffCapMS   int    `json:"backoff_cap_ms" mapstructure:"backoff_cap_ms"`
	RetryPolicy    string `json:"retry_policy" mapstructure:"retry_policy"` // transient, all
	EnableLogging  bool   `json:"enable_logging" mapstructure:"enable_logging"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// ToolConfig narrows policy for one tool. Nil pointers mean "inherit".
type ToolConfig struct {
	Enabled        *bool `json:"enabled,omitempty" mapstructure:"enabled"`
	TimeoutSeconds int   `json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds"`
	MaxRetries     *int  `json:"max_retries,omitempty" mapstructure:"max_retries"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Executor: ExecutorConfig{
			TimeoutSeconds: 30,
			MaxRetries:     0,
			Backoff:        "fixed",
			BackoffBaseMS:  100,
			BackoffCapMS:   5000,
			RetryPolicy:    "transient",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
		Tools: map[string]ToolConfig{},
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Executor.TimeoutSeconds <= 0 {
		return fmt.Errorf("executor.timeout_seconds must be positive, got %d", c.Executor.TimeoutSeconds)
	}
	if c.Executor.MaxRetries < 0 {
		return fmt.Errorf("executor.max_retries cannot be negative, got %d", c.Executor.MaxRetries)
	}
	switch c.Executor.Backoff {
	case "", "fixed", "exponential":
	default:
		return fmt.Errorf("executor.backoff must be fixed or exponential, got %q", c.Executor.Backoff)
	}
	switch c.Executor.RetryPolicy {
	case "", "transient", "all":
	default:
		return fmt.Errorf("executor.retry_policy must be transient or all, got %q", c.Executor.RetryPolicy)
	}
	for name, tc := range c.Tools {
		if tc.TimeoutSeconds < 0 {
			return fmt.Errorf("tools.%s.timeout_seconds cannot be negative", name)
		}
		if tc.MaxRetries != nil && *tc.MaxRetries < 0 {
			return fmt.Errorf("tools.%s.max_retries cannot be negative", name)
		}
	}
	return nil
}

// ExecutorPolicy maps the configuration onto an executor.Config,
// including per-tool overrides.
func (c *Config) ExecutorPolicy() executor.Config {
	cfg := executor.DefaultConfig()
	cfg.Timeout = time.Duration(c.Executor.TimeoutSeconds) * time.Second
	cfg.MaxRetries = c.Executor.MaxRetries
	cfg.EnableLogging = c.Executor.EnableLogging

	base := time.Duration(c.Executor.BackoffBaseMS) * time.Millisecond
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	switch c.Executor.Backoff {
	case "exponential":
		capDelay := time.Duration(c.Executor.BackoffCapMS) * time.Millisecond
		if capDelay <= 0 {
			capDelay = 5 * time.Second
		}
		cfg.Backoff = executor.ExponentialBackoff(base, capDelay)
	default:
		cfg.Backoff = executor.FixedBackoff(base)
	}

	if c.Executor.RetryPolicy == "all" {
		cfg.RetryPolicy = executor.RetryAll
	}

	for name, tc := range c.Tools {
		if tc.TimeoutSeconds == 0 && tc.MaxRetries == nil {
			continue
		}
		if cfg.ToolOverrides == nil {
			cfg.ToolOverrides = make(map[string]executor.Override)
		}
		cfg.ToolOverrides[name] = executor.Override{
			Timeout:    time.Duration(tc.TimeoutSeconds) * time.Second,
			MaxRetries: tc.MaxRetries,
		}
	}

	return cfg
}

// ApplyEnablement toggles registered tools to match the configured
// enabled flags. Unregistered names are skipped: configuration may
// describe tools that a given process never registers.
func (c *Config) ApplyEnablement(reg *registry.Registry) {
	for name, tc := range c.Tools {
		if tc.Enabled == nil || !reg.Has(name) {
			continue
		}
		_ = reg.SetEnabled(name, *tc.Enabled)
	}
}
