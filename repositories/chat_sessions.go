package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"choo-choo/models"
)

type ChatSessionRepository struct {
	col *mongo.Collection
}

func NewChatSessionRepository(db *mongo.Database) *ChatSessionRepository {
	return &ChatSessionRepository{col: db.Collection("chat_sessions")}
}

// Create inserts an empty session titled "New Chat" for the user.
func (r *ChatSessionRepository) Create(ctx context.Context, userID string) (*models.ChatSession, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &models.ChatSession{
		UserID:    uid,
		Title:     models.DefaultSessionTitle,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return s, nil
}

// Get returns a session owned by userID.
func (r *ChatSessionRepository) Get(ctx context.Context, userID, sessionID string) (*models.ChatSession, error) {
	filter, err := ownedFilter(userID, sessionID)
	if err != nil {
		return nil, err
	}
	var s models.ChatSession
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByUser returns the user's sessions, most recent first, without messages.
func (r *ChatSessionRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.ChatSession, int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, 0, ErrNotFound
	}
	filter := bson.M{"user_id": uid}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetProjection(bson.M{"messages": 0})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []models.ChatSession
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AppendMessage pushes one exchange to the end of the session.
func (r *ChatSessionRepository) AppendMessage(ctx context.Context, userID, sessionID string, msg models.Message) error {
	filter, err := ownedFilter(userID, sessionID)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTitleIfDefault replaces the title only while it is still "New Chat".
func (r *ChatSessionRepository) SetTitleIfDefault(ctx context.Context, userID, sessionID, title string) error {
	filter, err := ownedFilter(userID, sessionID)
	if err != nil {
		return err
	}
	filter["title"] = models.DefaultSessionTitle
	_, err = r.col.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"title": title, "updated_at": time.Now()},
	})
	return err
}

// Delete removes a session owned by userID.
func (r *ChatSessionRepository) Delete(ctx context.Context, userID, sessionID string) error {
	filter, err := ownedFilter(userID, sessionID)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func ownedFilter(userID, sessionID string) (bson.M, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	sid, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": sid, "user_id": uid}, nil
}
