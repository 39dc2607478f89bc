package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"recipebot-backend/internal/handlers"
	"recipebot-backend/internal/middleware"
	"recipebot-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	conversationHandler *handlers.ConversationHandler,
	wsHub *websocket.Hub,
	redisClient *redis.Client,
	chatPerMin int,
	authPerMin int,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	chatLimiter := middleware.NewRateLimiter(redisClient, "chat", chatPerMin, time.Minute)
	authLimiter := middleware.NewRateLimiter(redisClient, "auth", authPerMin, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Chat (public, client-held history) ────
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Post("/chat", chatHandler.Chat)
		})

		// ──── Saved Conversations ────
		r.Route("/conversations", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", conversationHandler.Save)
			r.Get("/", conversationHandler.List)
			r.Get("/{id}", conversationHandler.Get)
			r.Post("/{id}/messages", conversationHandler.Continue)
			r.Delete("/{id}", conversationHandler.Delete)
		})

		// ──── WebSocket ────
		r.Get("/ws/chat", wsHub.HandleChat)
	})

	return r
}
