package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Contains(t, string(data), "item_delay")
	assert.Contains(t, string(data), "max_message_chars")
	assert.NotNil(t, GenerateSchema())
}

func TestWarnings(t *testing.T) {
	t.Run("everything configured", func(t *testing.T) {
		cfg := &Config{}
		cfg.LLM.Provider = "openai"
		cfg.Sources.Telegram.Token = "t"
		cfg.Sources.Bridge.Discord = "http://d"
		cfg.Sources.Bridge.WhatsApp = "http://w"
		cfg.Sources.Bridge.Slack = "http://s"
		cfg.Sources.Bridge.Email = "http://e"
		cfg.Sources.GitHub.Token = "gh"
		assert.Empty(t, Warnings(cfg))
	})

	t.Run("missing sources", func(t *testing.T) {
		cfg := &Config{}
		cfg.LLM.Provider = "openrouter"
		warnings := Warnings(cfg)
		assert.Len(t, warnings, 7)
		assert.Contains(t, warnings[0], "openrouter")
	})
}
