package models

// Message roles understood by the completion providers. Role is an open
// string on the wire; only these three carry meaning.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint: the full conversation
// history, oldest first. A missing system message is supplied server-side.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse echoes the conversation back with the assistant's new reply
// appended as the last element.
type ChatResponse struct {
	Messages []ChatMessage `json:"messages"`
}
