package llm

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleCompleter implements Completer using the official Google Gemini SDK.
type GoogleCompleter struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// GoogleConfig holds configuration for the Google completer.
type GoogleConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// NewGoogleCompleter creates a new Google Gemini completer using the official SDK.
func NewGoogleCompleter(cfg GoogleConfig) (*GoogleCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is required for google")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required for google")
	}
	if cfg.MaxTokens == 0 {
		return nil, fmt.Errorf("max_tokens is required for google")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	maxTokens := int32(cfg.MaxTokens)
	model.MaxOutputTokens = &maxTokens

	return &GoogleCompleter{
		client:    client,
		model:     model,
		modelName: cfg.Model,
	}, nil
}

// Close closes the underlying client.
func (c *GoogleCompleter) Close() error {
	return c.client.Close()
}

// Complete implements the Completer interface.
func (c *GoogleCompleter) Complete(ctx context.Context, conv Conversation) (*Completion, error) {
	ctx, cancel := withAttemptDeadline(ctx)
	defer cancel()

	// Work on a copy: the completer is shared by concurrent workers, and
	// the system instruction is per-conversation state.
	model := *c.model
	for _, m := range conv {
		if m.Role == RoleSystem {
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(m.Content)},
			}
			break
		}
	}

	cs := model.StartChat()
	for _, m := range conv {
		switch m.Role {
		case RoleUser:
			cs.History = append(cs.History, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		case RoleAssistant:
			cs.History = append(cs.History, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		}
	}

	// The last user turn is sent as the prompt, not carried in history.
	var prompt string
	if n := len(cs.History); n > 0 && cs.History[n-1].Role == "user" {
		last := cs.History[n-1]
		cs.History = cs.History[:n-1]
		if len(last.Parts) > 0 {
			if text, ok := last.Parts[0].(genai.Text); ok {
				prompt = string(text)
			}
		}
	}

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		var gerr *googleapi.Error
		if stderrors.As(err, &gerr) {
			return nil, classifyStatus(gerr.Code, "google", err)
		}
		return nil, classifyTransport(err, "google")
	}

	var content string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &Completion{
		Message: Message{
			Role:    RoleAssistant,
			Content: content,
		},
		TokensUsed: tokens,
		Model:      c.modelName,
	}, nil
}
