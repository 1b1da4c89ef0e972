package llm

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicCompleter implements Completer using the official Anthropic SDK.
type AnthropicCompleter struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// AnthropicConfig holds configuration for the Anthropic completer.
type AnthropicConfig struct {
	APIKey    string
	BaseURL   string // Optional custom endpoint
	Model     string
	MaxTokens int
}

// NewAnthropicCompleter creates a new Anthropic completer using the official SDK.
// SDK-internal retries are disabled; the swarm engine owns the retry policy.
func NewAnthropicCompleter(cfg AnthropicConfig) (*AnthropicCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for anthropic")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for anthropic")
	}
	if cfg.MaxTokens == 0 {
		return nil, fmt.Errorf("max_tokens is required for anthropic")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicCompleter{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Complete implements the Completer interface.
func (c *AnthropicCompleter) Complete(ctx context.Context, conv Conversation) (*Completion, error) {
	ctx, cancel := withAttemptDeadline(ctx)
	defer cancel()

	var systemPrompt string
	messages := make([]anthropic.MessageParam, 0, len(conv))

	for _, m := range conv {
		switch m.Role {
		case RoleSystem:
			systemPrompt = m.Content
		case RoleUser:
			messages = append(messages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(m.Content),
			))
		case RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(m.Content),
			))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages:  messages,
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apierr *anthropic.Error
		if stderrors.As(err, &apierr) {
			return nil, classifyStatus(apierr.StatusCode, "anthropic", err)
		}
		return nil, classifyTransport(err, "anthropic")
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &Completion{
		Message: Message{
			Role:    RoleAssistant,
			Content: content,
		},
		TokensUsed: int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		Model:      string(resp.Model),
	}, nil
}
