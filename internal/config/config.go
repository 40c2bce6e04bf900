package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// MongoDB
	MongoURL string
	DBName   string

	// Redis
	RedisURL string

	// LLM providers (one key shared by chat and realtime voice)
	LLMAPIKey     string
	ChatModel     string
	RealtimeModel string

	// CORS
	CORSOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		MongoURL:      mustGetEnv("MONGO_URL"),
		DBName:        mustGetEnv("DB_NAME"),
		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		LLMAPIKey:     mustGetEnv("LLM_API_KEY"),
		ChatModel:     getEnvOrDefault("CHAT_MODEL", "gemini-2.0-flash"),
		RealtimeModel: getEnvOrDefault("REALTIME_MODEL", "gpt-4o-realtime-preview"),
		CORSOrigins:   splitOrigins(getEnvOrDefault("CORS_ORIGINS", "*")),
	}

	return cfg
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
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
