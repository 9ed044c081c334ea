package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/umputun/watchmon/pkg/config"
)

// GeminiCompleter talks to Google Gemini models
type GeminiCompleter struct {
	client    *genai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewGeminiCompleter creates a completer for provider "gemini"
func NewGeminiCompleter(ctx context.Context, cfg config.LLMConfig) (*GeminiCompleter, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}
	return &GeminiCompleter{client: client, config: cfg, systemMsg: systemMsg}, nil
}

// Complete runs one generate-content call and returns the response text
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.systemMsg, genai.RoleUser),
		Temperature:       genai.Ptr(float32(g.config.Temperature)),
		MaxOutputTokens:   int32(g.config.MaxTokens), //nolint:gosec // bounded by config
	}
	if g.config.UseJSONMode {
		genCfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("no response from gemini")
	}
	return text, nil
}
