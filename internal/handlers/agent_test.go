package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"voicebot-backend/internal/models"
	"voicebot-backend/internal/repository"
)

type fakeAgentStore struct {
	agents map[string]*models.Agent
	order  []string
}

func newFakeAgentStore() *fakeAgentStore {
	return &fakeAgentStore{agents: make(map[string]*models.Agent)}
}

func (f *fakeAgentStore) Create(ctx context.Context, agent *models.Agent) error {
	stored := *agent
	f.agents[agent.ID] = &stored
	f.order = append(f.order, agent.ID)
	return nil
}

func (f *fakeAgentStore) List(ctx context.Context) ([]models.Agent, error) {
	agents := make([]models.Agent, 0, len(f.order))
	for _, id := range f.order {
		agents = append(agents, *f.agents[id])
	}
	return agents, nil
}

func (f *fakeAgentStore) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	if a, ok := f.agents[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAgentStore) Update(ctx context.Context, id string, upd models.AgentUpdate) (*models.Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.SystemPrompt != nil {
		a.SystemPrompt = *upd.SystemPrompt
	}
	if upd.Language != nil {
		a.Language = *upd.Language
	}
	if upd.IsActive != nil {
		a.IsActive = *upd.IsActive
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAgentStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.agents[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.agents, id)
	for i, stored := range f.order {
		if stored == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newAgentRouter(store agentStore) http.Handler {
	h := NewAgentHandler(store)
	r := chi.NewRouter()
	r.Route("/api/agents", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateAgent_ThenGet(t *testing.T) {
	router := newAgentRouter(newFakeAgentStore())

	rr := doJSON(t, router, http.MethodPost, "/api/agents", map[string]string{
		"name":          "Test",
		"description":   "d",
		"system_prompt": "p",
		"language":      "english",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var created models.Agent
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected a generated id")
	}

	rr = doJSON(t, router, http.MethodGet, "/api/agents/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var fetched models.Agent
	if err := json.NewDecoder(rr.Body).Decode(&fetched); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if fetched.Name != "Test" || fetched.Description != "d" || fetched.SystemPrompt != "p" {
		t.Errorf("Fetched record differs from created: %+v", fetched)
	}
	if fetched.Language != "english" {
		t.Errorf("Expected language 'english', got %q", fetched.Language)
	}
	if !fetched.IsActive {
		t.Error("Expected is_active=true")
	}
	if !fetched.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Timestamp drifted: created %v, fetched %v", created.CreatedAt, fetched.CreatedAt)
	}
}

func TestCreateAgent_DefaultLanguage(t *testing.T) {
	router := newAgentRouter(newFakeAgentStore())

	rr := doJSON(t, router, http.MethodPost, "/api/agents", map[string]string{
		"name":          "Test",
		"description":   "d",
		"system_prompt": "p",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var created models.Agent
	json.NewDecoder(rr.Body).Decode(&created)
	if created.Language != "hindi" {
		t.Errorf("Expected default language 'hindi', got %q", created.Language)
	}
}

func TestCreateAgent_MissingFields(t *testing.T) {
	router := newAgentRouter(newFakeAgentStore())

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"description": "d", "system_prompt": "p"}},
		{"missing system_prompt", map[string]string{"name": "n", "description": "d"}},
		{"empty body", map[string]string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, "/api/agents", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	router := newAgentRouter(newFakeAgentStore())

	rr := doJSON(t, router, http.MethodGet, "/api/agents/unknown-id", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp.Detail != "Agent not found" {
		t.Errorf("Expected detail 'Agent not found', got %q", resp.Detail)
	}
}

func TestUpdateAgent_PartialChangesOnlyGivenFields(t *testing.T) {
	store := newFakeAgentStore()
	router := newAgentRouter(store)

	agent := models.NewAgent(models.AgentCreate{
		Name: "Original", Description: "original desc", SystemPrompt: "original prompt", Language: "hindi",
	})
	store.Create(context.Background(), agent)

	rr := doJSON(t, router, http.MethodPut, "/api/agents/"+agent.ID, map[string]string{
		"description": "updated desc",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var updated models.Agent
	json.NewDecoder(rr.Body).Decode(&updated)

	if updated.Description != "updated desc" {
		t.Errorf("Expected updated description, got %q", updated.Description)
	}
	if updated.Name != "Original" || updated.SystemPrompt != "original prompt" || updated.Language != "hindi" {
		t.Errorf("Unset fields changed: %+v", updated)
	}
	if !updated.IsActive {
		t.Error("Expected is_active untouched")
	}
}

func TestUpdateAgent_EmptyBodyIsNoOp(t *testing.T) {
	store := newFakeAgentStore()
	router := newAgentRouter(store)

	agent := models.NewAgent(models.AgentCreate{Name: "n", Description: "d", SystemPrompt: "p"})
	store.Create(context.Background(), agent)

	rr := doJSON(t, router, http.MethodPut, "/api/agents/"+agent.ID, map[string]string{})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for all-nil update, got %d", rr.Code)
	}

	var updated models.Agent
	json.NewDecoder(rr.Body).Decode(&updated)
	if updated.Name != agent.Name || updated.Description != agent.Description {
		t.Errorf("No-op update changed the record: %+v", updated)
	}
}

func TestUpdateAgent_NotFound(t *testing.T) {
	router := newAgentRouter(newFakeAgentStore())

	rr := doJSON(t, router, http.MethodPut, "/api/agents/unknown-id", map[string]string{"name": "x"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestDeleteAgent(t *testing.T) {
	store := newFakeAgentStore()
	router := newAgentRouter(store)

	agent := models.NewAgent(models.AgentCreate{Name: "n", Description: "d", SystemPrompt: "p"})
	store.Create(context.Background(), agent)

	rr := doJSON(t, router, http.MethodDelete, "/api/agents/"+agent.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.MessageResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Message != "Agent deleted successfully" {
		t.Errorf("Expected delete acknowledgment, got %q", resp.Message)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/agents/"+agent.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rr.Code)
	}
}

func TestDeleteAgent_NotFound(t *testing.T) {
	router := newAgentRouter(newFakeAgentStore())

	rr := doJSON(t, router, http.MethodDelete, "/api/agents/unknown-id", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp.Detail != "Agent not found" {
		t.Errorf("Expected detail 'Agent not found', got %q", resp.Detail)
	}
}

func TestListAgents(t *testing.T) {
	store := newFakeAgentStore()
	router := newAgentRouter(store)

	for _, name := range []string{"first", "second"} {
		store.Create(context.Background(), models.NewAgent(models.AgentCreate{
			Name: name, Description: "d", SystemPrompt: "p",
		}))
	}

	rr := doJSON(t, router, http.MethodGet, "/api/agents/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var agents []models.Agent
	if err := json.NewDecoder(rr.Body).Decode(&agents); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(agents) != 2 {
		t.Errorf("Expected 2 agents, got %d", len(agents))
	}
}
