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

	"voicebot-backend/internal/config"
	"voicebot-backend/internal/database"
	"voicebot-backend/internal/handlers"
	"voicebot-backend/internal/repository"
	"voicebot-backend/internal/router"
	"voicebot-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Voice Bot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize MongoDB Connection ────
	db, err := database.NewMongo(cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Fatalf("✗ MongoDB connection failed: %v", err)
	}
	defer db.Close()
	log.Println("✓ MongoDB connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Initialize Repositories ────
	agentRepo := repository.NewAgentRepo(db.DB)
	llmConfigRepo := repository.NewLLMConfigRepo(db.DB)
	conversationRepo := repository.NewConversationRepo(db.DB)
	historyCache := repository.NewHistoryCache(redisClient)

	// ──── Step 4: Initialize LLM Providers ────
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	geminiProvider, err := services.NewGeminiProvider(ctx, cfg.LLMAPIKey, cfg.ChatModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiProvider.Close()
	log.Printf("✓ Default chat provider initialized (%s)", cfg.ChatModel)

	providerResolver := services.NewProviderResolver(llmConfigRepo, geminiProvider)
	defer providerResolver.Close()

	// ──── Initialize Services ────
	chatService := services.NewChatService(agentRepo, conversationRepo, historyCache, providerResolver)
	realtimeService := services.NewRealtimeService(cfg.LLMAPIKey, cfg.RealtimeModel)

	// ──── Step 5: Seed Default Agent ────
	if err := services.EnsureDefaultAgent(ctx, agentRepo); err != nil {
		log.Fatalf("✗ Default agent seeding failed: %v", err)
	}
	log.Println("✓ Default agent ensured")

	// ──── Initialize Handlers ────
	agentHandler := handlers.NewAgentHandler(agentRepo)
	llmConfigHandler := handlers.NewLLMConfigHandler(llmConfigRepo)
	chatHandler := handlers.NewChatHandler(chatService)
	conversationHandler := handlers.NewConversationHandler(conversationRepo)
	realtimeHandler := handlers.NewRealtimeHandler(realtimeService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		agentHandler,
		llmConfigHandler,
		chatHandler,
		conversationHandler,
		realtimeHandler,
		cfg.CORSOrigins,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Voice Bot Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
