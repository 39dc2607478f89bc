package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a saved chat history owned by a user. Messages live in
// their own table and are loaded on demand.
type Conversation struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SaveConversationRequest creates a new saved conversation from an existing
// history.
type SaveConversationRequest struct {
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
}

// ContinueConversationRequest appends one user message to a saved
// conversation and runs it through the assistant.
type ContinueConversationRequest struct {
	Message string `json:"message"`
}
