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

type llmConfigDoc struct {
	ID        string `bson:"id"`
	Provider  string `bson:"provider"`
	APIKey    string `bson:"api_key"`
	ModelName string `bson:"model_name"`
	CreatedAt string `bson:"created_at"`
}

func newLLMConfigDoc(c *models.LLMConfig) llmConfigDoc {
	return llmConfigDoc{
		ID:        c.ID,
		Provider:  c.Provider,
		APIKey:    c.APIKey,
		ModelName: c.ModelName,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func (d llmConfigDoc) toModel() (*models.LLMConfig, error) {
	createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for config %s: %w", d.ID, err)
	}
	return &models.LLMConfig{
		ID:        d.ID,
		Provider:  d.Provider,
		APIKey:    d.APIKey,
		ModelName: d.ModelName,
		CreatedAt: createdAt,
	}, nil
}

type LLMConfigRepo struct {
	coll *mongo.Collection
}

func NewLLMConfigRepo(db *mongo.Database) *LLMConfigRepo {
	return &LLMConfigRepo{coll: db.Collection("llm_configs")}
}

func (r *LLMConfigRepo) Create(ctx context.Context, config *models.LLMConfig) error {
	if _, err := r.coll.InsertOne(ctx, newLLMConfigDoc(config)); err != nil {
		return fmt.Errorf("failed to insert llm config: %w", err)
	}
	return nil
}

func (r *LLMConfigRepo) List(ctx context.Context) ([]models.LLMConfig, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list llm configs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []llmConfigDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode llm configs: %w", err)
	}

	configs := make([]models.LLMConfig, 0, len(docs))
	for _, d := range docs {
		c, err := d.toModel()
		if err != nil {
			return nil, err
		}
		configs = append(configs, *c)
	}
	return configs, nil
}

// Latest returns the most recently created config, or ErrNotFound when no
// configs exist. RFC3339 UTC strings sort lexicographically in time order.
func (r *LLMConfigRepo) Latest(ctx context.Context) (*models.LLMConfig, error) {
	var doc llmConfigDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest llm config: %w", err)
	}
	return doc.toModel()
}

func (r *LLMConfigRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete llm config %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
