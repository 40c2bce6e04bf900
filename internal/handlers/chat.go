package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"voicebot-backend/internal/models"
)

type chatSender interface {
	Send(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type ChatHandler struct {
	chat chatSender
}

func NewChatHandler(chat chatSender) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.AgentID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("agent_id is required"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("message is required"))
		return
	}

	resp, err := h.chat.Send(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
