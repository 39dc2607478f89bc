package worker

import (
	"strings"
	"testing"

	"recipebot-backend/internal/models"
)

func TestTranscript_SkipsSystemMessages(t *testing.T) {
	messages := []models.ChatMessage{
		{Role: models.RoleSystem, Content: "persona prompt"},
		{Role: models.RoleUser, Content: "What can I make with eggs?"},
		{Role: models.RoleAssistant, Content: "## Omelette"},
	}

	got := transcript(messages)

	if strings.Contains(got, "persona prompt") {
		t.Error("Transcript should not include system messages")
	}
	if !strings.Contains(got, "user: What can I make with eggs?") {
		t.Errorf("Missing user turn in transcript: %q", got)
	}
	if !strings.Contains(got, "assistant: ## Omelette") {
		t.Errorf("Missing assistant turn in transcript: %q", got)
	}
}

func TestTranscript_CapsLength(t *testing.T) {
	long := strings.Repeat("x", 5000)
	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: long},
		{Role: models.RoleUser, Content: "should be dropped"},
	}

	got := transcript(messages)

	if strings.Contains(got, "should be dropped") {
		t.Error("Transcript should stop once the cap is reached")
	}
}
