package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountd/account-api/internal/core/domain"
)

const sessionCollection = "sessions"

// MongoSessionRepository stores the audit session records. One row per
// login; logout removes every row for the user.
type MongoSessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{coll: db.Collection(sessionCollection)}
}

type mongoSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	SessionID string             `bson:"session_id"`
	CreatedAt int64              `bson:"created_at"`
}

func (ms *mongoSession) toDomain() domain.Session {
	return domain.Session{
		ID:        ms.ID.Hex(),
		UserID:    ms.UserID,
		SessionID: ms.SessionID,
		CreatedAt: unixToTime(ms.CreatedAt),
	}
}

func (r *MongoSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	doc := mongoSession{
		UserID:    session.UserID,
		SessionID: session.SessionID,
		CreatedAt: session.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Session, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer cur.Close(ctx)

	var sessions []domain.Session
	for cur.Next(ctx) {
		var ms mongoSession
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	session := ms.toDomain()
	return &session, nil
}

func (r *MongoSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
