package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolmesh/toolmesh/pkg/executor"
	"github.com/toolmesh/toolmesh/pkg/registry"
	"github.com/toolmesh/toolmesh/pkg/tool"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.Executor.TimeoutSeconds)
	assert.Equal(t, "fixed", cfg.Executor.Backoff)
	assert.Equal(t, "transient", cfg.Executor.RetryPolicy)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "zero timeout",
			mutate: func(c *Config) { c.Executor.TimeoutSeconds = 0 },
		},
		{
			name:   "negative retries",
			mutate: func(c *Config) { c.Executor.MaxRetries = -1 },
		},
		{
			name:   "bad backoff",
			mutate: func(c *Config) { c.Executor.Backoff = "jittered" },
		},
		{
			name:   "bad retry policy",
			mutate: func(c *Config) { c.Executor.RetryPolicy = "sometimes" },
		},
		{
			name: "negative tool timeout",
			mutate: func(c *Config) {
				c.Tools = map[string]ToolConfig{"x": {TimeoutSeconds: -1}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_ExecutorPolicy(t *testing.T) {
	retries := 4
	cfg := DefaultConfig()
	cfg.Executor.TimeoutSeconds = 10
	cfg.Executor.MaxRetries = 2
	cfg.Executor.Backoff = "exponential"
	cfg.Executor.BackoffBaseMS = 50
	cfg.Executor.BackoffCapMS = 400
	cfg.Executor.RetryPolicy = "all"
	cfg.Tools = map[string]ToolConfig{
		"slow": {TimeoutSeconds: 60, MaxRetries: &retries},
	}

	policy := cfg.ExecutorPolicy()
	assert.Equal(t, 10*time.Second, policy.Timeout)
	assert.Equal(t, 2, policy.MaxRetries)
	assert.Equal(t, executor.RetryAll, policy.RetryPolicy)

	assert.Equal(t, 50*time.Millisecond, policy.Backoff.Delay(1))
	assert.Equal(t, 100*time.Millisecond, policy.Backoff.Delay(2))
	assert.Equal(t, 400*time.Millisecond, policy.Backoff.Delay(10))

	override, ok := policy.ToolOverrides["slow"]
	require.True(t, ok)
	assert.Equal(t, time.Minute, override.Timeout)
	require.NotNil(t, override.MaxRetries)
	assert.Equal(t, 4, *override.MaxRetries)
}

func TestConfig_ApplyEnablement(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(tool.Func("a", "A",
		func(ctx context.Context, in struct{}) (struct{}, error) { return struct{}{}, nil })))
	require.NoError(t, reg.Register(tool.Func("b", "B",
		func(ctx context.Context, in struct{}) (struct{}, error) { return struct{}{}, nil })))

	off := false
	cfg := DefaultConfig()
	cfg.Tools = map[string]ToolConfig{
		"a":       {Enabled: &off},
		"missing": {Enabled: &off}, // unregistered names are skipped
	}

	cfg.ApplyEnablement(reg)

	assert.False(t, reg.Enabled("a"))
	assert.True(t, reg.Enabled("b"))
}
