package llm

import (
	"context"
	"testing"

	"github.com/vinayprograms/gptswarm/errors"
)

func TestCompleterConfigValidate(t *testing.T) {
	valid := CompleterConfig{
		Provider:  "openai",
		Model:     "gpt-3.5-turbo",
		APIKey:    "sk-test",
		MaxTokens: 4096,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CompleterConfig)
	}{
		{"missing provider", func(c *CompleterConfig) { c.Provider = "" }},
		{"missing model", func(c *CompleterConfig) { c.Model = "" }},
		{"missing api key", func(c *CompleterConfig) { c.APIKey = "" }},
		{"missing max tokens", func(c *CompleterConfig) { c.MaxTokens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestInferProviderFromModel(t *testing.T) {
	tests := []struct {
		model    string
		provider string
	}{
		{"gpt-3.5-turbo", "openai"},
		{"gpt-4o", "openai"},
		{"o3-mini", "openai"},
		{"claude-sonnet-4-20250514", "anthropic"},
		{"gemini-2.0-flash", "google"},
		{"unknown-model", ""},
	}

	for _, tt := range tests {
		if got := InferProviderFromModel(tt.model); got != tt.provider {
			t.Errorf("%s: expected %q, got %q", tt.model, tt.provider, got)
		}
	}
}

func TestNewCompleterUnknownProvider(t *testing.T) {
	_, err := NewCompleter(CompleterConfig{
		Provider:  "mystery",
		Model:     "m",
		APIKey:    "k",
		MaxTokens: 16,
	})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewCompleterInference(t *testing.T) {
	c, err := NewCompleter(CompleterConfig{
		Model:     "gpt-3.5-turbo",
		APIKey:    "sk-test",
		MaxTokens: 4096,
	})
	if err != nil {
		t.Fatalf("expected completer, got %v", err)
	}
	if _, ok := c.(*OpenAICompleter); !ok {
		t.Errorf("expected *OpenAICompleter, got %T", c)
	}
}

func TestCompleterFunc(t *testing.T) {
	fn := CompleterFunc(func(ctx context.Context, conv Conversation) (*Completion, error) {
		return &Completion{
			Message:    Message{Role: RoleAssistant, Content: "hi"},
			TokensUsed: 2,
		}, nil
	})

	comp, err := fn.Complete(context.Background(), Conversation{
		{Role: RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comp.Message.Content != "hi" || comp.TokensUsed != 2 {
		t.Errorf("unexpected completion: %+v", comp)
	}
}

func TestMockCompleter(t *testing.T) {
	mock := NewMockCompleter()
	mock.SetResponse("the big bang was big", 42)

	conv := Conversation{{Role: RoleUser, Content: "explain the big bang"}}
	comp, err := mock.Complete(context.Background(), conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comp.Message.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %s", comp.Message.Role)
	}
	if comp.TokensUsed != 42 {
		t.Errorf("expected 42 tokens, got %d", comp.TokensUsed)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
	if len(mock.LastConversation()) != 1 {
		t.Error("expected conversation to be recorded")
	}

	mock.SetError(errors.New(errors.ErrCodeRateLimited, "429"))
	if _, err := mock.Complete(context.Background(), conv); !errors.Is(err, errors.ErrCodeRateLimited) {
		t.Errorf("expected rate limited error, got %v", err)
	}
}
