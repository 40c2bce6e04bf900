package models

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a named voice-bot configuration: the system prompt drives the LLM
// verbatim, language is informational only.
type Agent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	SystemPrompt string    `json:"system_prompt"`
	Language     string    `json:"language"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AgentCreate is the payload for creating an agent.
type AgentCreate struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
	Language     string `json:"language"`
}

// AgentUpdate carries a partial update; nil fields are left untouched.
type AgentUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	SystemPrompt *string `json:"system_prompt"`
	Language     *string `json:"language"`
	IsActive     *bool   `json:"is_active"`
}

// NewAgent builds a full record from a create payload, generating the id and
// creation time. Timestamps are truncated to whole seconds so the stored
// ISO-8601 string round-trips losslessly.
func NewAgent(req AgentCreate) *Agent {
	language := req.Language
	if language == "" {
		language = "hindi"
	}
	return &Agent{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		SystemPrompt: req.SystemPrompt,
		Language:     language,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}
