// Package llm turns batches of new messages into action drafts using an
// external text completion service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/watchmon/pkg/config"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// Completer sends a prompt to a language model and returns raw text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// openRouterURL is used for provider "openrouter" when no endpoint is set
const openRouterURL = "https://openrouter.ai/api/v1"

// default system prompt for action generation
const defaultSystemPrompt = `You monitor conversations and feeds on behalf of a user.
The user describes a goal, you decide whether new messages contain something the user must act on.
Answer with exactly one JSON object and nothing else.
Only report an action when the messages clearly match the goal. Small talk, greetings and
messages unrelated to the goal are never actions.
Titles are short imperative phrases (max 80 chars). Descriptions explain what to do and why,
referencing the relevant message content (max 300 chars).`

// OpenAICompleter talks to OpenAI compatible chat completion endpoints
type OpenAICompleter struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewOpenAICompleter creates a completer for providers "openai" and "openrouter"
func NewOpenAICompleter(cfg config.LLMConfig) *OpenAICompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.Endpoint != "":
		clientConfig.BaseURL = cfg.Endpoint
	case cfg.Provider == "openrouter":
		clientConfig.BaseURL = openRouterURL
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &OpenAICompleter{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// Complete runs one chat completion and returns the first choice text
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	// add JSON response format if enabled
	if c.config.UseJSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// NewCompleter picks a completer implementation for the configured provider
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case "", "openai", "openrouter":
		return NewOpenAICompleter(cfg), nil
	case "gemini":
		return NewGeminiCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
