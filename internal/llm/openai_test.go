package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebot-backend/internal/models"
)

func TestOpenAIChatCompletion_Success(t *testing.T) {
	var gotAuth string
	var gotBody openAIRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "A recipe."}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	messages := []models.ChatMessage{
		{Role: models.RoleSystem, Content: "prompt"},
		{Role: models.RoleUser, Content: "eggs?"},
	}

	reply, err := client.ChatCompletion(context.Background(), "gpt-4o-mini", messages)
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}

	if reply != "A recipe." {
		t.Errorf("Expected 'A recipe.', got %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("Expected model 'gpt-4o-mini', got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[1].Content != "eggs?" {
		t.Errorf("Messages not forwarded intact: %+v", gotBody.Messages)
	}
}

func TestOpenAIChatCompletion_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Incorrect API key provided", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient("bad-key", server.URL)
	_, err := client.ChatCompletion(context.Background(), "gpt-4o-mini", nil)
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Message != "Incorrect API key provided" {
		t.Errorf("Expected provider diagnostic message, got %q", provErr.Message)
	}
}

func TestOpenAIChatCompletion_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	_, err := client.ChatCompletion(context.Background(), "gpt-4o-mini", nil)
	if err == nil {
		t.Fatal("Expected error for empty choices")
	}
}

func TestOpenAIChatCompletion_MissingKey(t *testing.T) {
	client := NewOpenAIClient("", "")
	_, err := client.ChatCompletion(context.Background(), "gpt-4o-mini", nil)
	if err == nil {
		t.Fatal("Expected error when API key is not set")
	}
}
