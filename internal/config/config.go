package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// LLM provider
	LLMProvider   string // "openai" | "gemini"
	ModelName     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	// Rate limiting
	ChatRequestsPerMin int
	AuthRequestsPerMin int

	// Workers
	TitleWorkers int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		LLMProvider:   getEnvOrDefault("LLM_PROVIDER", "openai"),
		ModelName:     getEnvOrDefault("MODEL_NAME", "gpt-4o-mini"),
		OpenAIAPIKey:  getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		GeminiAPIKey:  getEnvOrDefault("GEMINI_API_KEY", ""),

		ChatRequestsPerMin: getEnvAsIntOrDefault("CHAT_REQUESTS_PER_MINUTE", 20),
		AuthRequestsPerMin: getEnvAsIntOrDefault("AUTH_REQUESTS_PER_MINUTE", 10),

		TitleWorkers: getEnvAsIntOrDefault("TITLE_WORKERS", 2),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
