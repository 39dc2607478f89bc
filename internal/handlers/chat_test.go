package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipebot-backend/internal/models"
)

type fakeCompleter struct {
	err error
}

func (f *fakeCompleter) Complete(ctx context.Context, conversation []models.ChatMessage) ([]models.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	updated := append([]models.ChatMessage{}, conversation...)
	return append(updated, models.ChatMessage{Role: models.RoleAssistant, Content: "A recipe."}), nil
}

func TestChatHandler_ValidRequest(t *testing.T) {
	body, _ := json.Marshal(models.ChatRequest{
		Messages: []models.ChatMessage{{Role: "user", Content: "What can I make with eggs?"}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	NewChatHandler(&fakeCompleter{}).Chat(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(resp.Messages))
	}
	last := resp.Messages[len(resp.Messages)-1]
	if last.Role != models.RoleAssistant || last.Content != "A recipe." {
		t.Errorf("Unexpected last message: %+v", last)
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"message missing role", `{"messages":[{"content":"hi"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			NewChatHandler(&fakeCompleter{}).Chat(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("Expected VALIDATION_ERROR, got %q", resp.Error.Code)
			}
		})
	}
}

func TestChatHandler_EmptyConversation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"messages":[]}`))
	rr := httptest.NewRecorder()

	NewChatHandler(&fakeCompleter{}).Chat(rr, req)

	// An empty history is valid: the completer supplies the system prompt.
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Role != models.RoleAssistant {
		t.Errorf("Expected single assistant message, got %+v", resp.Messages)
	}
}

func TestChatHandler_ProviderFailure(t *testing.T) {
	body, _ := json.Marshal(models.ChatRequest{
		Messages: []models.ChatMessage{{Role: "user", Content: "Hi"}},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	NewChatHandler(&fakeCompleter{err: errors.New("rate limited")}).Chat(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != "AI_ERROR" {
		t.Errorf("Expected AI_ERROR, got %q", resp.Error.Code)
	}
}
