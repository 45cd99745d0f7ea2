// Package llm provides the chat-completion collaborator used for answer
// assembly. The completion capability is consumed, never implemented.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"docsearch/internal/domain"
)

// Ensure Client implements the interface.
var _ domain.Completer = (*Client)(nil)

// Config configures the OpenAI chat client.
type Config struct {
	APIKeyEnv string
	BaseURL   string
	Model     string
}

// Client answers prompts through the OpenAI chat API.
type Client struct {
	client *openai.Client
	model  string
}

// New creates a chat client from the given configuration.
func New(cfg Config) (*Client, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", keyEnv)
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{client: openai.NewClientWithConfig(clientCfg), model: model}, nil
}

// Complete generates a single chat completion for the prompts.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
