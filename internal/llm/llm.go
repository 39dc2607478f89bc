package llm

import (
	"context"
	"fmt"

	"recipebot-backend/internal/models"
)

// Provider sends a conversation to a completion API and returns the
// assistant's reply text. Implementations must not modify the message slice.
type Provider interface {
	ChatCompletion(ctx context.Context, model string, messages []models.ChatMessage) (string, error)
}

// ProviderError wraps any failure returned by a completion provider: network
// errors, auth/quota rejections, unknown models, malformed responses. No
// retry happens at this layer.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
