package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// SchemaJSON returns the indented JSON schema for the Config struct
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// Warnings returns non-fatal configuration problems, e.g. sources without credentials.
// Items on such sources are still swept, but their fetch will fail and be logged.
func Warnings(cfg *Config) []string {
	var res []string
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "openai" {
		res = append(res, fmt.Sprintf("llm.api_key is empty for provider %s", cfg.LLM.Provider))
	}
	if cfg.Sources.Telegram.Token == "" {
		res = append(res, "sources.telegram.token is empty, telegram chats can't be watched")
	}
	bridges := map[string]string{
		"discord":  cfg.Sources.Bridge.Discord,
		"whatsapp": cfg.Sources.Bridge.WhatsApp,
		"slack":    cfg.Sources.Bridge.Slack,
		"email":    cfg.Sources.Bridge.Email,
	}
	for _, name := range []string{"discord", "whatsapp", "slack", "email"} {
		if bridges[name] == "" {
			res = append(res, fmt.Sprintf("sources.bridge.%s is empty, %s items can't be watched", name, name))
		}
	}
	if cfg.Sources.GitHub.Token == "" {
		res = append(res, "sources.github.token is empty, github requests are unauthenticated and rate limited")
	}
	return res
}
