package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

schedule:
  interval: 5
  item_delay: 1s
  fetch_workers: 3

llm:
  provider: openrouter
  api_key: key
  model: gpt-4o-mini
  max_messages: 10

sources:
  telegram:
    token: tg-token
  bridge:
    discord: http://localhost:7001
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 5, cfg.Schedule.Interval)
		assert.Equal(t, time.Second, cfg.Schedule.ItemDelay)
		assert.Equal(t, 3, cfg.Schedule.FetchWorkers)
		assert.Equal(t, "openrouter", cfg.LLM.Provider)
		assert.Equal(t, 10, cfg.LLM.MaxMessages)
		assert.Equal(t, "tg-token", cfg.Sources.Telegram.Token)
		assert.Equal(t, "http://localhost:7001", cfg.Sources.Bridge.Discord)
		assert.True(t, cfg.Sources.Feed.Enabled)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "llm:\n  model: gpt-4o-mini\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 15, cfg.Schedule.Interval)
		assert.Equal(t, 500*time.Millisecond, cfg.Schedule.ItemDelay)
		assert.Equal(t, 30*time.Second, cfg.Schedule.FetchTimeout)
		assert.Equal(t, 60*time.Second, cfg.Schedule.ClassifyTimeout)
		assert.Equal(t, 1, cfg.Schedule.FetchWorkers)
		assert.Equal(t, 5, cfg.Schedule.RetryAttempts)
		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Equal(t, 15, cfg.LLM.MaxMessages)
		assert.Equal(t, 500, cfg.LLM.MaxMessageChars)
		assert.Equal(t, "https://api.github.com", cfg.Sources.GitHub.APIURL)
		assert.Equal(t, "Watchmon/1.0", cfg.Sources.UserAgent)
		assert.Equal(t, 100, cfg.Sources.RecentLimit)
		assert.Contains(t, cfg.Database.DSN, "watchmon.db")
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("WATCHMON_TEST_KEY", "secret-from-env")
		cfg, err := Load(writeConfig(t, "llm:\n  model: m\n  api_key: ${WATCHMON_TEST_KEY}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret-from-env", cfg.LLM.APIKey)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config string
		errMsg string
	}{
		{name: "missing model", config: "llm:\n  provider: openai\n", errMsg: "llm.model is required"},
		{name: "unknown provider", config: "llm:\n  provider: acme\n  model: m\n", errMsg: "not supported"},
		{name: "gemini without key", config: "llm:\n  provider: gemini\n  model: gemini-2.0-flash\n", errMsg: "api_key is required"},
		{name: "bad temperature", config: "llm:\n  model: m\n  temperature: 3\n", errMsg: "temperature"},
		{name: "bad cron", config: "llm:\n  model: m\nschedule:\n  cron: \"every tuesday\"\n", errMsg: "cron"},
		{name: "negative delay", config: "llm:\n  model: m\nschedule:\n  item_delay: -1s\n", errMsg: "item_delay"},
		{name: "short server timeout", config: "llm:\n  model: m\nserver:\n  timeout: 10ms\n", errMsg: "server timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.config))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_ValidCron(t *testing.T) {
	cfg, err := Load(writeConfig(t, "llm:\n  model: m\nschedule:\n  cron: \"*/10 * * * *\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "*/10 * * * *", cfg.Schedule.Cron)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
