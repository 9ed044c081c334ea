package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/watchmon/pkg/config"
	"github.com/umputun/watchmon/pkg/domain"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	wd, err := os.Getwd()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: filepath.Join(wd, "testdata", "test_config.yml")}) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping") //nolint:noctx // test
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:18765/api/v1/watched") //nolint:noctx // test
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestMakeRegistry(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sources.Bridge.Discord = "http://127.0.0.1:9001"
	cfg.Sources.Bridge.Email = "http://127.0.0.1:9004"
	cfg.Sources.Feed.Enabled = true

	reg := makeRegistry(cfg)
	assert.Equal(t, []string{"discord/channel", "discord/server", "email/mailbox", "github/repo", "rss/feed"}, reg.Keys())
	assert.False(t, reg.Supports(domain.PlatformTelegram, domain.ItemChat), "no token, no telegram")
	assert.False(t, reg.Supports(domain.PlatformSlack, domain.ItemChannel), "no bridge url, no slack")

	cfg.Sources.Feed.Enabled = false
	assert.False(t, makeRegistry(cfg).Supports(domain.PlatformRSS, domain.ItemFeed))
}

func TestSecrets(t *testing.T) {
	cfg := &config.Config{}
	assert.Empty(t, secrets(cfg))
	cfg.LLM.APIKey = "sk-1"
	cfg.Sources.GitHub.Token = "ghp_2"
	assert.Equal(t, []string{"sk-1", "ghp_2"}, secrets(cfg))
}

func TestEnvFileFromArgs(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	assert.Equal(t, ".env", envFileFromArgs(nil))
	assert.Equal(t, "prod.env", envFileFromArgs([]string{"--dbg", "--env-file", "prod.env"}))
	assert.Equal(t, "x.env", envFileFromArgs([]string{"--env-file=x.env"}))
	t.Setenv("ENV_FILE", "from-env.env")
	assert.Equal(t, "from-env.env", envFileFromArgs([]string{"--dbg"}))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, "secret1", "secret2")
	})
}
