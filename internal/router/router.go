package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"voicebot-backend/internal/handlers"
	"voicebot-backend/internal/middleware"
)

func New(
	agentHandler *handlers.AgentHandler,
	llmConfigHandler *handlers.LLMConfigHandler,
	chatHandler *handlers.ChatHandler,
	conversationHandler *handlers.ConversationHandler,
	realtimeHandler *handlers.RealtimeHandler,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(corsOrigins))

	// Token minting costs provider money; chat itself stays unlimited.
	realtimeLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Agent Routes ────
		r.Route("/agents", func(r chi.Router) {
			r.Post("/", agentHandler.Create)
			r.Get("/", agentHandler.List)
			r.Get("/{id}", agentHandler.Get)
			r.Put("/{id}", agentHandler.Update)
			r.Delete("/{id}", agentHandler.Delete)
		})

		// ──── LLM Config Routes ────
		r.Route("/llm-configs", func(r chi.Router) {
			r.Post("/", llmConfigHandler.Create)
			r.Get("/", llmConfigHandler.List)
			r.Delete("/{id}", llmConfigHandler.Delete)
		})

		// ──── Chat Routes ────
		r.Post("/chat", chatHandler.Send)
		r.Get("/conversations/{session_id}", conversationHandler.ListBySession)

		// ──── Realtime Voice Routes ────
		r.Group(func(r chi.Router) {
			r.Use(realtimeLimiter.Middleware)
			r.Post("/realtime/session", realtimeHandler.CreateSession)
		})
	})

	return r
}
