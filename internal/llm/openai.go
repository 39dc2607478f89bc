package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recipebot-backend/internal/models"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements Provider using the OpenAI Chat Completions API.
// Any OpenAI-compatible endpoint (a litellm proxy, Groq, a local gateway)
// works by overriding the base URL.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

type openAIRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message models.ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "", &ProviderError{Provider: "openai", Message: "API key not set"}
	}

	body, err := json.Marshal(openAIRequest{Model: model, Messages: messages})
	if err != nil {
		return "", &ProviderError{Provider: "openai", Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: "openai", Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "openai", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var out openAIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&out); err != nil {
		return "", &ProviderError{Provider: "openai", Message: fmt.Sprintf("failed to decode response (HTTP %d)", resp.StatusCode), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", &ProviderError{Provider: "openai", Message: msg}
	}

	if len(out.Choices) == 0 {
		return "", &ProviderError{Provider: "openai", Message: "no choices in response"}
	}
	return out.Choices[0].Message.Content, nil
}
