package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"recipebot-backend/internal/models"
)

// GeminiClient implements Provider on top of the Google Gemini API. Gemini
// has no system role in its chat history, so the system message is passed as
// the model's system instruction and the rest as alternating content parts.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Message: "failed to create client", Err: err}
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) ChatCompletion(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	m := c.client.GenerativeModel(model)

	var parts []genai.Part
	for _, msg := range messages {
		if msg.Role == models.RoleSystem {
			m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(msg.Content)}}
			continue
		}
		parts = append(parts, genai.Text(msg.Role+": "+msg.Content))
	}
	if len(parts) == 0 {
		parts = append(parts, genai.Text(""))
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "request failed", Err: err}
	}

	text := extractText(resp)
	if text == "" {
		return "", &ProviderError{Provider: "gemini", Message: "empty response"}
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
