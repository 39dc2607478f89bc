package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"recipebot-backend/internal/models"
)

// completer is the piece of the chat service the handlers need.
type completer interface {
	Complete(ctx context.Context, conversation []models.ChatMessage) ([]models.ChatMessage, error)
}

type ChatHandler struct {
	completer completer
}

func NewChatHandler(c completer) *ChatHandler {
	return &ChatHandler{completer: c}
}

// Chat runs one completion turn over the caller-held history and returns the
// full updated conversation.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	for _, m := range req.Messages {
		if strings.TrimSpace(m.Role) == "" {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Every message needs a role", r))
			return
		}
	}

	updated, err := h.completer.Complete(r.Context(), req.Messages)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResp("AI_ERROR", "Failed to get assistant response", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Messages: updated})
}
