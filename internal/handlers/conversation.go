package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"recipebot-backend/internal/middleware"
	"recipebot-backend/internal/models"
	"recipebot-backend/internal/repository"
	"recipebot-backend/internal/worker"
)

type ConversationHandler struct {
	repo      *repository.ConversationRepo
	completer completer
	queue     *redis.Client
}

func NewConversationHandler(repo *repository.ConversationRepo, c completer, queue *redis.Client) *ConversationHandler {
	return &ConversationHandler{
		repo:      repo,
		completer: c,
		queue:     queue,
	}
}

// Save stores a conversation for the authenticated user. When no title is
// given one is generated asynchronously by the title worker.
func (h *ConversationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Conversation has no messages", r))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New conversation"
	}

	conversation := &models.Conversation{
		UserID:   middleware.GetUserID(r.Context()),
		Title:    title,
		Messages: req.Messages,
	}

	if err := h.repo.Create(r.Context(), conversation); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save conversation", r))
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		worker.EnqueueTitleJob(r.Context(), h.queue, conversation.ID)
	}

	writeJSON(w, http.StatusCreated, conversation)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.repo.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list conversations", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conversation, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

// Continue appends the user's message to a saved conversation, runs the
// completer over the full history, persists the new turns, and returns the
// updated conversation.
func (h *ConversationHandler) Continue(w http.ResponseWriter, r *http.Request) {
	conversation, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req models.ContinueConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	history := append(conversation.Messages, models.ChatMessage{
		Role:    models.RoleUser,
		Content: req.Message,
	})

	updated, err := h.completer.Complete(r.Context(), history)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResp("AI_ERROR", "Failed to get assistant response", r))
		return
	}

	// Persist only the new turns. A system prompt the completer injected is
	// not stored; it is re-injected on every completion, so stored histories
	// stay exactly what the user and assistant said.
	newMessages := []models.ChatMessage{history[len(history)-1], updated[len(updated)-1]}
	if err := h.repo.AppendMessages(r.Context(), conversation.ID, newMessages); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save messages", r))
		return
	}

	conversation.Messages = updated
	writeJSON(w, http.StatusOK, conversation)
}

func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	conversation, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), conversation.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete conversation", r))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadOwned parses the {id} URL param, loads the conversation, and verifies
// ownership. Writes the error response itself when returning ok=false.
func (h *ConversationHandler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Conversation, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
		return nil, false
	}

	conversation, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Conversation not found", r))
		} else {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load conversation", r))
		}
		return nil, false
	}

	if conversation.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return nil, false
	}

	return conversation, true
}
