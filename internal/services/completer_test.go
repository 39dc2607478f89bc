package services

import (
	"context"
	"errors"
	"testing"

	"recipebot-backend/internal/models"
)

// fakeProvider records what the completer sends and returns a canned reply.
type fakeProvider struct {
	gotModel    string
	gotMessages []models.ChatMessage
	reply       string
	err         error
}

func (f *fakeProvider) ChatCompletion(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	f.gotModel = model
	f.gotMessages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestComplete_PrependsSystemPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input []models.ChatMessage
	}{
		{"empty conversation", nil},
		{"user message first", []models.ChatMessage{
			{Role: models.RoleUser, Content: "What can I make with eggs?"},
		}},
		{"assistant message first", []models.ChatMessage{
			{Role: models.RoleAssistant, Content: "Hello!"},
			{Role: models.RoleUser, Content: "Hi"},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{reply: "reply"}
			c := NewCompleter(provider, "gpt-4o-mini", DefaultSystemPrompt)

			updated, err := c.Complete(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("Complete failed: %v", err)
			}

			sent := provider.gotMessages
			if len(sent) != len(tc.input)+1 {
				t.Fatalf("Expected %d messages sent, got %d", len(tc.input)+1, len(sent))
			}
			if sent[0].Role != models.RoleSystem || sent[0].Content != DefaultSystemPrompt {
				t.Errorf("Expected default system prompt first, got role %q", sent[0].Role)
			}
			for i, m := range tc.input {
				if sent[i+1] != m {
					t.Errorf("Message %d reordered or changed: %+v", i, sent[i+1])
				}
			}
			if len(updated) != len(sent)+1 {
				t.Errorf("Expected returned length %d, got %d", len(sent)+1, len(updated))
			}
		})
	}
}

func TestComplete_KeepsCallerSystemPrompt(t *testing.T) {
	input := []models.ChatMessage{
		{Role: models.RoleSystem, Content: "Custom prompt"},
		{Role: models.RoleUser, Content: "Hi"},
	}

	provider := &fakeProvider{reply: "reply"}
	c := NewCompleter(provider, "gpt-4o-mini", DefaultSystemPrompt)

	updated, err := c.Complete(context.Background(), input)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if len(provider.gotMessages) != len(input) {
		t.Fatalf("Expected %d messages sent, got %d", len(input), len(provider.gotMessages))
	}
	for i, m := range input {
		if provider.gotMessages[i] != m {
			t.Errorf("Message %d changed: %+v", i, provider.gotMessages[i])
		}
	}
	if updated[0].Content != "Custom prompt" {
		t.Errorf("Caller system prompt replaced: %q", updated[0].Content)
	}
}

func TestComplete_AppendsTrimmedReply(t *testing.T) {
	provider := &fakeProvider{reply: "  Pasta recipe...  \n"}
	c := NewCompleter(provider, "gpt-4o-mini", DefaultSystemPrompt)

	updated, err := c.Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if len(updated) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(updated))
	}
	last := updated[len(updated)-1]
	if last.Role != models.RoleAssistant {
		t.Errorf("Expected assistant role, got %q", last.Role)
	}
	if last.Content != "Pasta recipe..." {
		t.Errorf("Expected trimmed reply, got %q", last.Content)
	}
}

func TestComplete_EmptyReplyIsNotAnError(t *testing.T) {
	provider := &fakeProvider{reply: "   "}
	c := NewCompleter(provider, "gpt-4o-mini", DefaultSystemPrompt)

	updated, err := c.Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if updated[len(updated)-1].Content != "" {
		t.Errorf("Expected empty trimmed content, got %q", updated[len(updated)-1].Content)
	}
}

func TestComplete_ProviderErrorReturnsNoConversation(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	c := NewCompleter(provider, "gpt-4o-mini", DefaultSystemPrompt)

	updated, err := c.Complete(context.Background(), []models.ChatMessage{
		{Role: models.RoleUser, Content: "Hi"},
	})
	if err == nil {
		t.Fatal("Expected error from failing provider")
	}
	if updated != nil {
		t.Errorf("Expected no conversation on failure, got %d messages", len(updated))
	}
}

func TestComplete_DoesNotMutateInput(t *testing.T) {
	input := []models.ChatMessage{
		{Role: models.RoleUser, Content: "What can I make with eggs?"},
	}

	provider := &fakeProvider{reply: "Omelette"}
	c := NewCompleter(provider, "gpt-4o-mini", DefaultSystemPrompt)

	if _, err := c.Complete(context.Background(), input); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if len(input) != 1 || input[0].Content != "What can I make with eggs?" {
		t.Errorf("Input conversation was mutated: %+v", input)
	}
}

func TestComplete_UsesConfiguredModel(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	c := NewCompleter(provider, "gpt-4.1", DefaultSystemPrompt)

	if _, err := c.Complete(context.Background(), nil); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if provider.gotModel != "gpt-4.1" {
		t.Errorf("Expected model 'gpt-4.1', got %q", provider.gotModel)
	}
}
