package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn. The system only ever
// writes RoleUser and RoleAssistant; reads tolerate whatever is stored.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is one turn in a session's history. Append-only: turns
// are written in user/assistant pairs and never updated or deleted.
// Timestamps keep sub-second precision; they are the sort key for replaying a
// session, so whole-second resolution would tie within every pair.
type ConversationMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	AgentID   string    `json:"agent_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func NewConversationMessage(sessionID, agentID string, role Role, content string) *ConversationMessage {
	return &ConversationMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		AgentID:   agentID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewTurnPair builds the user and assistant records of one chat exchange. The
// assistant turn always carries a strictly later timestamp than the user
// turn, so a timestamp sort can never replay an answer before its question.
func NewTurnPair(sessionID, agentID, userContent, assistantContent string) (*ConversationMessage, *ConversationMessage) {
	userMsg := NewConversationMessage(sessionID, agentID, RoleUser, userContent)
	assistantMsg := NewConversationMessage(sessionID, agentID, RoleAssistant, assistantContent)
	if !assistantMsg.Timestamp.After(userMsg.Timestamp) {
		assistantMsg.Timestamp = userMsg.Timestamp.Add(time.Microsecond)
	}
	return userMsg, assistantMsg
}
