package llm

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAICompleter implements Completer using the official OpenAI SDK.
type OpenAICompleter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// OpenAIConfig holds configuration for the OpenAI completer.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string // Optional custom endpoint
	Model     string
	MaxTokens int
}

// NewOpenAICompleter creates a new OpenAI completer using the official SDK.
// SDK-internal retries are disabled; the swarm engine owns the retry policy.
func NewOpenAICompleter(cfg OpenAIConfig) (*OpenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for openai")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for openai")
	}
	if cfg.MaxTokens == 0 {
		return nil, fmt.Errorf("max_tokens is required for openai")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &OpenAICompleter{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Complete implements the Completer interface.
func (c *OpenAICompleter) Complete(ctx context.Context, conv Conversation) (*Completion, error) {
	ctx, cancel := withAttemptDeadline(ctx)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conv))
	for _, m := range conv {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(c.model),
		Messages:  messages,
		MaxTokens: openai.Int(int64(c.maxTokens)),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if stderrors.As(err, &apierr) {
			return nil, classifyStatus(apierr.StatusCode, "openai", err)
		}
		return nil, classifyTransport(err, "openai")
	}

	if len(resp.Choices) == 0 {
		return nil, classifyStatus(0, "openai", fmt.Errorf("response carried no choices"))
	}

	return &Completion{
		Message: Message{
			Role:    RoleAssistant,
			Content: resp.Choices[0].Message.Content,
		},
		TokensUsed: int(resp.Usage.TotalTokens),
		Model:      resp.Model,
	}, nil
}
