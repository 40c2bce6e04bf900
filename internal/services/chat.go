package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"voicebot-backend/internal/models"
	"voicebot-backend/internal/repository"
)

// historyLimit caps the prior turns replayed to the provider per request.
const historyLimit = 20

type agentSource interface {
	GetByID(ctx context.Context, id string) (*models.Agent, error)
}

type conversationStore interface {
	InsertPair(ctx context.Context, userMsg, assistantMsg *models.ConversationMessage) error
	Recent(ctx context.Context, sessionID string, limit int) ([]models.ConversationMessage, error)
}

type historyCache interface {
	Append(ctx context.Context, sessionID string, msgs ...models.ChatMessage) error
	Recent(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
}

type providerResolver interface {
	Resolve(ctx context.Context) (Provider, error)
}

// ChatService bridges a chat turn to the LLM provider and persists both sides
// of the exchange. Nothing is written unless the provider call succeeds.
type ChatService struct {
	agents        agentSource
	conversations conversationStore
	history       historyCache
	providers     providerResolver
}

func NewChatService(agents agentSource, conversations conversationStore, history historyCache, providers providerResolver) *ChatService {
	return &ChatService{
		agents:        agents,
		conversations: conversations,
		history:       history,
		providers:     providers,
	}
}

func (s *ChatService) Send(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	agent, err := s.agents.GetByID(ctx, req.AgentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: "Agent not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load agent: %w", err)
	}

	// Sessions are plain grouping keys: a provided id is used as-is, an
	// empty one mints a new session.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := s.loadHistory(ctx, sessionID)

	provider, err := s.providers.Resolve(ctx)
	if err != nil {
		return nil, &UpstreamError{Message: "Failed to resolve LLM provider", Err: err}
	}

	reply, err := provider.Generate(ctx, agent.SystemPrompt, history, req.Message)
	if err != nil {
		return nil, &UpstreamError{Message: "LLM request failed", Err: err}
	}

	userMsg, assistantMsg := models.NewTurnPair(sessionID, agent.ID, req.Message, reply)
	if err := s.conversations.InsertPair(ctx, userMsg, assistantMsg); err != nil {
		return nil, &UpstreamError{Message: "Failed to persist conversation", Err: err}
	}

	// Cache warm-up is best effort; the store already has the turns.
	if err := s.history.Append(ctx, sessionID,
		models.ChatMessage{Role: models.RoleUser, Content: req.Message},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	); err != nil {
		log.Printf("History cache append failed for session %s: %v", sessionID, err)
	}

	return &models.ChatResponse{Response: reply, SessionID: sessionID}, nil
}

// loadHistory fetches the session's recent turns, preferring the cache. A
// failure here degrades the turn to single-shot rather than failing it.
func (s *ChatService) loadHistory(ctx context.Context, sessionID string) []models.ChatMessage {
	cached, err := s.history.Recent(ctx, sessionID)
	if err != nil {
		log.Printf("History cache read failed for session %s: %v", sessionID, err)
	} else if len(cached) > 0 {
		return cached
	}

	stored, err := s.conversations.Recent(ctx, sessionID, historyLimit)
	if err != nil {
		log.Printf("History load failed for session %s: %v", sessionID, err)
		return nil
	}

	msgs := make([]models.ChatMessage, 0, len(stored))
	for _, m := range stored {
		msgs = append(msgs, models.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return msgs
}
