package models

import (
	"time"

	"github.com/google/uuid"
)

// Known provider tags. Stored configs may carry any string; the chat path
// falls back to the default provider for tags it does not recognize.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig is a stored provider credential and model selection. The API key
// is persisted and returned as-is.
type LLMConfig struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	APIKey    string    `json:"api_key"`
	ModelName string    `json:"model_name"`
	CreatedAt time.Time `json:"created_at"`
}

// LLMConfigCreate is the payload for creating an LLM configuration.
type LLMConfigCreate struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"api_key"`
	ModelName string `json:"model_name"`
}

func NewLLMConfig(req LLMConfigCreate) *LLMConfig {
	return &LLMConfig{
		ID:        uuid.NewString(),
		Provider:  req.Provider,
		APIKey:    req.APIKey,
		ModelName: req.ModelName,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
