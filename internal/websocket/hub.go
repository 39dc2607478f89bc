package websocket

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"recipebot-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type completer interface {
	Complete(ctx context.Context, conversation []models.ChatMessage) ([]models.ChatMessage, error)
}

// Hub serves interactive chat sessions over WebSocket. Each connection holds
// its own conversation history for the lifetime of the socket; every text
// frame from the client becomes a user turn and the assistant reply is
// written back as a text frame. Nothing is persisted.
type Hub struct {
	completer completer
	jwtSecret []byte
}

func NewHub(c completer, jwtSecret string) *Hub {
	return &Hub{
		completer: c,
		jwtSecret: []byte(jwtSecret),
	}
}

func (h *Hub) HandleChat(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var history []models.ChatMessage

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}

		history = append(history, models.ChatMessage{Role: models.RoleUser, Content: text})

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		updated, err := h.completer.Complete(ctx, history)
		cancel()
		if err != nil {
			log.Printf("WebSocket chat completion failed: %v", err)
			conn.WriteMessage(websocket.TextMessage, []byte("Sorry, something went wrong. Please try again."))
			// Drop the failed turn so a retry resends it cleanly.
			history = history[:len(history)-1]
			continue
		}

		history = updated
		reply := updated[len(updated)-1].Content
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
	}
}
