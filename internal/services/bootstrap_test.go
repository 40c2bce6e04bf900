package services

import (
	"context"
	"errors"
	"testing"

	"voicebot-backend/internal/models"
)

type fakeUpserter struct {
	calls    int
	existing map[string]*models.Agent
	err      error
}

func (f *fakeUpserter) UpsertByName(ctx context.Context, agent *models.Agent) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	if f.existing == nil {
		f.existing = make(map[string]*models.Agent)
	}
	if _, ok := f.existing[agent.Name]; ok {
		return false, nil
	}
	f.existing[agent.Name] = agent
	return true, nil
}

func TestEnsureDefaultAgent_CreatesOnce(t *testing.T) {
	upserter := &fakeUpserter{}

	if err := EnsureDefaultAgent(context.Background(), upserter); err != nil {
		t.Fatalf("First seeding failed: %v", err)
	}
	if err := EnsureDefaultAgent(context.Background(), upserter); err != nil {
		t.Fatalf("Second seeding failed: %v", err)
	}

	if len(upserter.existing) != 1 {
		t.Fatalf("Expected exactly one seeded agent, got %d", len(upserter.existing))
	}

	agent, ok := upserter.existing["Order Taking Agent"]
	if !ok {
		t.Fatal("Expected agent named 'Order Taking Agent'")
	}
	if agent.Language != "hindi" {
		t.Errorf("Expected language 'hindi', got %q", agent.Language)
	}
	if !agent.IsActive {
		t.Error("Expected seeded agent to be active")
	}
	if agent.SystemPrompt == "" {
		t.Error("Expected a non-empty system prompt")
	}
}

func TestEnsureDefaultAgent_PropagatesStoreFailure(t *testing.T) {
	upserter := &fakeUpserter{err: errors.New("store down")}

	if err := EnsureDefaultAgent(context.Background(), upserter); err == nil {
		t.Fatal("Expected error when the upsert fails")
	}
}
