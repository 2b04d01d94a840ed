package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "live-market-data", cfg.Server.Name)
	assert.Equal(t, "1.0.0", cfg.Server.Version)
	assert.Equal(t, TransportSSE, cfg.Server.Transport)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, ProviderYahoo, cfg.Upstream.Provider)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  transport: stdio
  addr: ":9000"
upstream:
  provider: financego
  timeout: 5s
batch:
  concurrency: 8
log:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, ProviderFinanceGo, cfg.Upstream.Provider)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  transport: sse\nupstream:\n  base_url: https://file.example\n")
	t.Setenv("MCP_TRANSPORT", "stdio")
	t.Setenv("YAHOO_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("BATCH_CONCURRENCY", "2")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Upstream.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unterminated"))
		assert.ErrorContains(t, err, "parse config")
	})
	t.Run("invalid timeout env", func(t *testing.T) {
		t.Setenv("UPSTREAM_TIMEOUT", "soon")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "UPSTREAM_TIMEOUT")
	})
	t.Run("invalid concurrency env", func(t *testing.T) {
		t.Setenv("BATCH_CONCURRENCY", "many")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "BATCH_CONCURRENCY")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad transport", func(c *Config) { c.Server.Transport = "websocket" }, "server.transport"},
		{"bad provider", func(c *Config) { c.Upstream.Provider = "bloomberg" }, "upstream.provider"},
		{"negative timeout", func(c *Config) { c.Upstream.Timeout = -time.Second }, "upstream.timeout"},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = -1 }, "batch.concurrency"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &Config{}
			c.Server.Transport = TransportSSE
			c.Upstream.Provider = ProviderYahoo
			c.Batch.Concurrency = 1
			c.Log.Format = "json"
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
