package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"voicebot-backend/internal/models"
	"voicebot-backend/internal/repository"
)

type llmConfigStore interface {
	Create(ctx context.Context, config *models.LLMConfig) error
	List(ctx context.Context) ([]models.LLMConfig, error)
	Delete(ctx context.Context, id string) error
}

type LLMConfigHandler struct {
	configs llmConfigStore
}

func NewLLMConfigHandler(configs llmConfigStore) *LLMConfigHandler {
	return &LLMConfigHandler{configs: configs}
}

func (h *LLMConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LLMConfigCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Provider) == "" || strings.TrimSpace(req.APIKey) == "" || strings.TrimSpace(req.ModelName) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("provider, api_key and model_name are required"))
		return
	}

	config := models.NewLLMConfig(req)
	if err := h.configs.Create(r.Context(), config); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, config)
}

func (h *LLMConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.configs.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, configs)
}

func (h *LLMConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.configs.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("Configuration not found"))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Configuration deleted successfully"})
}
