package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebot-backend/internal/config"
	"recipebot-backend/internal/database"
	"recipebot-backend/internal/handlers"
	"recipebot-backend/internal/llm"
	"recipebot-backend/internal/middleware"
	"recipebot-backend/internal/repository"
	"recipebot-backend/internal/router"
	"recipebot-backend/internal/services"
	"recipebot-backend/internal/websocket"
	"recipebot-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Recipe Chatbot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	conversationRepo := repository.NewConversationRepo(pool)

	// ──── Step 5: Initialize LLM Provider ────
	var provider llm.Provider
	switch cfg.LLMProvider {
	case "gemini":
		geminiClient, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiClient.Close()
		provider = geminiClient
	case "openai":
		provider = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	default:
		log.Fatalf("✗ Unknown LLM_PROVIDER %q (want \"openai\" or \"gemini\")", cfg.LLMProvider)
	}
	log.Printf("✓ LLM provider initialized (%s, model %s)", cfg.LLMProvider, cfg.ModelName)

	// ──── Initialize Services ────
	completer := services.NewCompleter(provider, cfg.ModelName, services.DefaultSystemPrompt)
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(completer)
	conversationHandler := handlers.NewConversationHandler(conversationRepo, completer, redisClient)

	// ──── Step 6: Start Title Worker Pool ────
	workerPool := worker.NewPool(redisClient, completer, conversationRepo, cfg.TitleWorkers)
	workerPool.Start()
	log.Printf("✓ Title worker pool started (%d goroutines)", cfg.TitleWorkers)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(completer, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		chatHandler,
		conversationHandler,
		wsHub,
		redisClient,
		cfg.ChatRequestsPerMin,
		cfg.AuthRequestsPerMin,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // completions can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Recipe Chatbot Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
