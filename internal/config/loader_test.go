package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader("/path/to/config.json")
	assert.NotNil(t, loader)
	assert.Equal(t, "/path/to/config.json", loader.configPath)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("load default config when file doesn't exist", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "nonexistent.json")

		loader := NewLoader(configPath)
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, 30, cfg.Executor.TimeoutSeconds)
	})

	t.Run("load config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		testConfig := `{
			"executor": {
				"timeout_seconds": 5,
				"max_retries": 2,
				"backoff": "exponential",
				"backoff_base_ms": 50,
				"backoff_cap_ms": 500,
				"retry_policy": "all",
				"enable_logging": true
			},
			"logging": {
				"level": "debug",
				"console": true
			},
			"tools": {
				"calculator": {"enabled": false, "timeout_seconds": 2}
			}
		}`
		require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

		loader := NewLoader(configPath)
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Executor.TimeoutSeconds)
		assert.Equal(t, 2, cfg.Executor.MaxRetries)
		assert.Equal(t, "exponential", cfg.Executor.Backoff)
		assert.True(t, cfg.Executor.EnableLogging)
		assert.Equal(t, "debug", cfg.Logging.Level)

		tc, ok := cfg.Tools["calculator"]
		require.True(t, ok)
		require.NotNil(t, tc.Enabled)
		assert.False(t, *tc.Enabled)
		assert.Equal(t, 2, tc.TimeoutSeconds)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		require.NoError(t, os.WriteFile(configPath,
			[]byte(`{"executor": {"timeout_seconds": -1}}`), 0644))

		loader := NewLoader(configPath)
		_, err := loader.Load()
		assert.Error(t, err)
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		require.NoError(t, os.WriteFile(configPath, []byte(`{not json`), 0644))

		loader := NewLoader(configPath)
		_, err := loader.Load()
		assert.Error(t, err)
	})
}

func TestLoaderWatch_ReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	writeConfig := func(timeoutSeconds int) {
		t.Helper()
		cfg := fmt.Sprintf(`{"executor": {"timeout_seconds": %d}}`, timeoutSeconds)
		require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))
	}

	writeConfig(5)

	loader := NewLoader(configPath)
	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Executor.TimeoutSeconds)

	changes := make(chan *Config, 8)
	require.NoError(t, loader.Watch(func(c *Config) { changes <- c }))

	// A valid rewrite reaches the callback with the new values.
	writeConfig(7)
	select {
	case got := <-changes:
		assert.Equal(t, 7, got.Executor.TimeoutSeconds)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}

	// One write can surface as several filesystem events; let them
	// settle before the invalid rewrite.
	for settled := false; !settled; {
		select {
		case <-changes:
		case <-time.After(300 * time.Millisecond):
			settled = true
		}
	}

	// An invalid rewrite is dropped and the callback never fires; the
	// previously loaded configuration stays in effect.
	writeConfig(-1)
	select {
	case got := <-changes:
		t.Fatalf("invalid reload delivered, timeout_seconds=%d", got.Executor.TimeoutSeconds)
	case <-time.After(time.Second):
	}
}

func TestLoaderWatch_RequiresLoad(t *testing.T) {
	loader := NewLoader("/path/to/config.json")
	err := loader.Watch(func(*Config) {})
	assert.Error(t, err)
}
