package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voicebot-backend/internal/models"
)

// messageTimeLayout is RFC3339 with a fixed-width nanosecond fraction. The
// padding matters: timestamp strings are the sort key for a session, and
// trimmed fractions (time.RFC3339Nano) do not order lexicographically.
const messageTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type conversationDoc struct {
	ID        string `bson:"id"`
	SessionID string `bson:"session_id"`
	AgentID   string `bson:"agent_id"`
	Role      string `bson:"role"`
	Content   string `bson:"content"`
	Timestamp string `bson:"timestamp"`
}

func newConversationDoc(m *models.ConversationMessage) conversationDoc {
	return conversationDoc{
		ID:        m.ID,
		SessionID: m.SessionID,
		AgentID:   m.AgentID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp.Format(messageTimeLayout),
	}
}

func (d conversationDoc) toModel() (*models.ConversationMessage, error) {
	ts, err := time.Parse(time.RFC3339Nano, d.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp for message %s: %w", d.ID, err)
	}
	return &models.ConversationMessage{
		ID:        d.ID,
		SessionID: d.SessionID,
		AgentID:   d.AgentID,
		Role:      models.Role(d.Role),
		Content:   d.Content,
		Timestamp: ts,
	}, nil
}

// ConversationRepo is the append-only store of chat turns. Messages are only
// ever inserted in user/assistant pairs.
type ConversationRepo struct {
	coll *mongo.Collection
}

func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	return &ConversationRepo{coll: db.Collection("conversations")}
}

// InsertPair writes both turns of a chat exchange in one call.
func (r *ConversationRepo) InsertPair(ctx context.Context, userMsg, assistantMsg *models.ConversationMessage) error {
	docs := []interface{}{newConversationDoc(userMsg), newConversationDoc(assistantMsg)}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert conversation turns: %w", err)
	}
	return nil
}

// ListBySession returns every turn of a session in chronological order. An
// unknown session yields an empty list.
func (r *ConversationRepo) ListBySession(ctx context.Context, sessionID string) ([]models.ConversationMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation %s: %w", sessionID, err)
	}
	defer cur.Close(ctx)

	return decodeMessages(ctx, cur)
}

// Recent returns the last limit turns of a session in chronological order.
func (r *ConversationRepo) Recent(ctx context.Context, sessionID string, limit int) ([]models.ConversationMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent turns for %s: %w", sessionID, err)
	}
	defer cur.Close(ctx)

	msgs, err := decodeMessages(ctx, cur)
	if err != nil {
		return nil, err
	}

	// Restore chronological order after the descending fetch.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func decodeMessages(ctx context.Context, cur *mongo.Cursor) ([]models.ConversationMessage, error) {
	var docs []conversationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode conversation turns: %w", err)
	}

	msgs := make([]models.ConversationMessage, 0, len(docs))
	for _, d := range docs {
		m, err := d.toModel()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, nil
}
