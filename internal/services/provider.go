package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"voicebot-backend/internal/models"
	"voicebot-backend/internal/repository"
)

// Provider is a synchronous chat LLM. Implementations receive the agent's
// system prompt verbatim plus the prior turns of the session.
type Provider interface {
	Generate(ctx context.Context, systemPrompt string, history []models.ChatMessage, message string) (string, error)
}

type llmConfigSource interface {
	Latest(ctx context.Context) (*models.LLMConfig, error)
}

// ProviderResolver picks the chat provider from the newest stored LLMConfig.
// Unknown provider tags and an empty config collection both fall back to the
// built-in default. Only the provider of the current latest config is kept;
// when a newer config takes over, the replaced provider is closed so the
// Gemini client's connection does not leak.
type ProviderResolver struct {
	configs  llmConfigSource
	fallback Provider

	mu       sync.Mutex
	cachedID string
	cached   Provider
}

func NewProviderResolver(configs llmConfigSource, fallback Provider) *ProviderResolver {
	return &ProviderResolver{
		configs:  configs,
		fallback: fallback,
	}
}

func (r *ProviderResolver) Resolve(ctx context.Context) (Provider, error) {
	cfg, err := r.configs.Latest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return r.fallback, nil
	}
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.cachedID == cfg.ID {
		return r.cached, nil
	}

	var p Provider
	switch cfg.Provider {
	case models.ProviderOpenAI:
		p = NewOpenAIProvider(cfg.APIKey, cfg.ModelName)
	case models.ProviderGemini:
		gp, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.ModelName)
		if err != nil {
			return nil, err
		}
		p = gp
	default:
		// Provider tags are free-form strings; tolerate the ones we
		// cannot route rather than failing the chat turn. The stale
		// cached provider is no longer selectable either way.
		log.Printf("Unknown provider %q in config %s, using default", cfg.Provider, cfg.ID)
		r.evictLocked()
		return r.fallback, nil
	}

	r.evictLocked()
	r.cachedID = cfg.ID
	r.cached = p
	return p, nil
}

// Close releases the cached provider. Safe to call on an empty resolver.
func (r *ProviderResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked()
}

func (r *ProviderResolver) evictLocked() {
	if closer, ok := r.cached.(interface{ Close() }); ok {
		closer.Close()
	}
	r.cachedID = ""
	r.cached = nil
}
