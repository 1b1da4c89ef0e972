// Package llm provides the conversation schema and completion-service adapters.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. Immutable once constructed.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered sequence of messages, processed by exactly
// one worker per batch run.
type Conversation []Message

// Completion is the result of one successful completion call.
type Completion struct {
	// Message is the assistant message the provider produced.
	Message Message `json:"message"`

	// TokensUsed is the total token usage the provider reported for the call.
	TokensUsed int `json:"tokens_used"`

	// Model is the model that produced the completion.
	Model string `json:"model,omitempty"`
}

// Completer performs one completion call against a remote service.
// Failures are reported as structured errors from the errors package so the
// caller can decide on retry from the error code, never from message text.
type Completer interface {
	Complete(ctx context.Context, conv Conversation) (*Completion, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, conv Conversation) (*Completion, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, conv Conversation) (*Completion, error) {
	return f(ctx, conv)
}

// CompleterConfig holds configuration for the completer factory.
type CompleterConfig struct {
	Provider  string `json:"provider"` // openai, anthropic, google
	Model     string `json:"model"`
	APIKey    string `json:"api_key"`
	MaxTokens int    `json:"max_tokens"`
	BaseURL   string `json:"base_url"` // Custom API endpoint, where supported
}

// Validate validates the configuration.
func (c *CompleterConfig) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.MaxTokens == 0 {
		return fmt.Errorf("max_tokens is required")
	}
	return nil
}

// requestTimeoutFloor is a guard against adapters being called without a
// deadline; the swarm worker normally sets one per attempt.
const requestTimeoutFloor = 10 * time.Second

// withAttemptDeadline ensures the call has a deadline.
func withAttemptDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, requestTimeoutFloor)
}
