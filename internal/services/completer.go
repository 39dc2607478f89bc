package services

import (
	"context"
	"strings"

	"recipebot-backend/internal/llm"
	"recipebot-backend/internal/models"
)

// Completer forwards a conversation to the configured completion provider and
// returns the conversation extended with the assistant's reply. It holds no
// mutable state: the system prompt and model name are fixed at construction,
// so concurrent calls are safe without locking.
type Completer struct {
	provider     llm.Provider
	model        string
	systemPrompt string
}

func NewCompleter(provider llm.Provider, model, systemPrompt string) *Completer {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Completer{
		provider:     provider,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// Model returns the configured model identifier.
func (c *Completer) Model() string { return c.model }

// Complete guarantees a system message is present and first, sends the full
// history to the provider, and returns a new slice with the assistant's
// trimmed reply appended. The caller's messages are never reordered, dropped,
// or mutated; a caller-supplied system message wins over the default. On
// provider failure no conversation is returned.
func (c *Completer) Complete(ctx context.Context, conversation []models.ChatMessage) ([]models.ChatMessage, error) {
	messages := conversation
	if len(conversation) == 0 || conversation[0].Role != models.RoleSystem {
		messages = make([]models.ChatMessage, 0, len(conversation)+2)
		messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: c.systemPrompt})
		messages = append(messages, conversation...)
	}

	reply, err := c.provider.ChatCompletion(ctx, c.model, messages)
	if err != nil {
		return nil, err
	}

	updated := make([]models.ChatMessage, 0, len(messages)+1)
	updated = append(updated, messages...)
	updated = append(updated, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: strings.TrimSpace(reply),
	})
	return updated, nil
}
