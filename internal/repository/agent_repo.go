package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voicebot-backend/internal/models"
)

// agentDoc is the persisted shape of an agent. Timestamps are stored as
// RFC3339 strings and rehydrated on every read.
type agentDoc struct {
	ID           string `bson:"id"`
	Name         string `bson:"name"`
	Description  string `bson:"description"`
	SystemPrompt string `bson:"system_prompt"`
	Language     string `bson:"language"`
	IsActive     bool   `bson:"is_active"`
	CreatedAt    string `bson:"created_at"`
}

func newAgentDoc(a *models.Agent) agentDoc {
	return agentDoc{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		SystemPrompt: a.SystemPrompt,
		Language:     a.Language,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func (d agentDoc) toModel() (*models.Agent, error) {
	createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for agent %s: %w", d.ID, err)
	}
	return &models.Agent{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		SystemPrompt: d.SystemPrompt,
		Language:     d.Language,
		IsActive:     d.IsActive,
		CreatedAt:    createdAt,
	}, nil
}

type AgentRepo struct {
	coll *mongo.Collection
}

func NewAgentRepo(db *mongo.Database) *AgentRepo {
	return &AgentRepo{coll: db.Collection("agents")}
}

func (r *AgentRepo) Create(ctx context.Context, agent *models.Agent) error {
	if _, err := r.coll.InsertOne(ctx, newAgentDoc(agent)); err != nil {
		return fmt.Errorf("failed to insert agent: %w", err)
	}
	return nil
}

func (r *AgentRepo) List(ctx context.Context) ([]models.Agent, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer cur.Close(ctx)

	var docs []agentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode agents: %w", err)
	}

	agents := make([]models.Agent, 0, len(docs))
	for _, d := range docs {
		a, err := d.toModel()
		if err != nil {
			return nil, err
		}
		agents = append(agents, *a)
	}
	return agents, nil
}

func (r *AgentRepo) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	var doc agentDoc
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", id, err)
	}
	return doc.toModel()
}

// Update merges the non-nil fields of upd into the stored document and returns
// the merged record. An update with no set fields succeeds without touching
// the document.
func (r *AgentRepo) Update(ctx context.Context, id string, upd models.AgentUpdate) (*models.Agent, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if set := buildAgentSet(upd); len(set) > 0 {
		if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("failed to update agent %s: %w", id, err)
		}
	}

	return r.GetByID(ctx, id)
}

func buildAgentSet(upd models.AgentUpdate) bson.M {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.SystemPrompt != nil {
		set["system_prompt"] = *upd.SystemPrompt
	}
	if upd.Language != nil {
		set["language"] = *upd.Language
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	return set
}

func (r *AgentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertByName inserts the agent unless a document with the same name already
// exists. The upsert is atomic per document, so concurrent startups cannot
// seed duplicates. Returns whether a new document was created.
func (r *AgentRepo) UpsertByName(ctx context.Context, agent *models.Agent) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"name": agent.Name},
		bson.M{"$setOnInsert": newAgentDoc(agent)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert agent %q: %w", agent.Name, err)
	}
	return res.UpsertedCount > 0, nil
}
