package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voicebot-backend/internal/models"
)

type conversationLister interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.ConversationMessage, error)
}

type ConversationHandler struct {
	conversations conversationLister
}

func NewConversationHandler(conversations conversationLister) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// ListBySession returns a session's turns in chronological order. Sessions are
// not first-class records, so an unknown id yields an empty list, not a 404.
func (h *ConversationHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.conversations.ListBySession(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msgs)
}
