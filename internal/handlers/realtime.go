package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

type sessionTokenIssuer interface {
	CreateSession(ctx context.Context) (json.RawMessage, error)
}

type RealtimeHandler struct {
	realtime sessionTokenIssuer
}

func NewRealtimeHandler(realtime sessionTokenIssuer) *RealtimeHandler {
	return &RealtimeHandler{realtime: realtime}
}

// CreateSession mints an ephemeral voice session token. The provider payload
// is passed through untouched.
func (h *RealtimeHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	payload, err := h.realtime.CreateSession(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}
