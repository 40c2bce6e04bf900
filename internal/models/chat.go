package models

// ChatMessage is a single prior turn forwarded to an LLM provider as context.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. SessionID is optional;
// a new session is minted when it is empty.
type ChatRequest struct {
	AgentID   string `json:"agent_id"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the reply from the agent.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}
