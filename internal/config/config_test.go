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

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: prod\n"))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, "2023-10", cfg.Shopify.APIVersion)
	assert.Equal(t, 30*time.Second, cfg.Shopify.RequestTimeout)
	assert.False(t, cfg.Runner.SkipFinalDelay)
	assert.Equal(t, 1, cfg.Runner.MaxRuns)
	assert.Equal(t, "Ghost Product", cfg.Defaults.ProductName)
	assert.Equal(t, "29.99", cfg.Defaults.ProductPrice)
	assert.Equal(t, 5, cfg.Defaults.Count)
	assert.Equal(t, "seconds", cfg.Defaults.DelayUnit)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
env: dev
shopify:
  api_version: "2024-01"
  request_timeout: 5s
runner:
  skip_final_delay: true
  max_runs: 3
kafka:
  enabled: true
  bootstrap.servers: ["kafka:9092"]
  topic: outcomes
`))
	require.NoError(t, err)

	assert.Equal(t, "2024-01", cfg.Shopify.APIVersion)
	assert.Equal(t, 5*time.Second, cfg.Shopify.RequestTimeout)
	assert.True(t, cfg.Runner.SkipFinalDelay)
	assert.Equal(t, 3, cfg.Runner.MaxRuns)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.BootstrapServers)
	assert.Equal(t, "outcomes", cfg.Kafka.Topic)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHOPIFY_API_VERSION", "2025-04")
	t.Setenv("RUNNER_MAX_RUNS", "2")

	cfg, err := Load(writeConfig(t, "env: local\n"))
	require.NoError(t, err)

	assert.Equal(t, "2025-04", cfg.Shopify.APIVersion)
	assert.Equal(t, 2, cfg.Runner.MaxRuns)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "negative max runs", body: "runner:\n  max_runs: -1\n"},
		{name: "kafka without brokers", body: "kafka:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
