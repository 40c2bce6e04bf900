package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"voicebot-backend/internal/models"
	"voicebot-backend/internal/repository"
	"voicebot-backend/internal/services"
)

type agentStore interface {
	Create(ctx context.Context, agent *models.Agent) error
	List(ctx context.Context) ([]models.Agent, error)
	GetByID(ctx context.Context, id string) (*models.Agent, error)
	Update(ctx context.Context, id string, upd models.AgentUpdate) (*models.Agent, error)
	Delete(ctx context.Context, id string) error
}

type AgentHandler struct {
	agents agentStore
}

func NewAgentHandler(agents agentStore) *AgentHandler {
	return &AgentHandler{agents: agents}
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AgentCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.SystemPrompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("name and system_prompt are required"))
		return
	}

	agent := models.NewAgent(req)
	if err := h.agents.Create(r.Context(), agent); err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agents.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, agents)
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	agent, err := h.agents.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("Agent not found"))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.AgentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	agent, err := h.agents.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("Agent not found"))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.agents.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("Agent not found"))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Agent deleted successfully"})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(detail string) models.ErrorResponse {
	return models.ErrorResponse{Detail: detail}
}

func serverError(w http.ResponseWriter, err error) {
	log.Printf("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResp("Internal server error"))
}

func handleServiceError(w http.ResponseWriter, err error) {
	var notFound *services.NotFoundError
	var upstream *services.UpstreamError
	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResp(notFound.Message))
	case errors.As(err, &upstream):
		log.Printf("Upstream failure: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResp(upstream.Message))
	default:
		serverError(w, err)
	}
}
