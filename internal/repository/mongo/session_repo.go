package mongo

import (
	"context"
	"errors"
	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionLogCollectionName = "session_logs"

// mongoSessionLogRepository implements repository.SessionLogRepository.
// Unlike the per-day collections there can be several sessions on one date,
// so lookups are filtered queries rather than point reads.
type mongoSessionLogRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionLogRepository creates a new instance of mongoSessionLogRepository.
func NewMongoSessionLogRepository(db *mongo.Database) repository.SessionLogRepository {
	return &mongoSessionLogRepository{
		collection: db.Collection(sessionLogCollectionName),
	}
}

// Create inserts a new session log.
func (r *mongoSessionLogRepository) Create(ctx context.Context, session *domain.SessionLog) (primitive.ObjectID, error) {
	if session.UserID == "" || session.Date == "" || session.Type == "" {
		return primitive.NilObjectID, errors.New("user ID, date, and type are required")
	}
	if session.Status == "" {
		session.Status = domain.SessionPlanned
	}

	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByDate returns all sessions logged for a single date, any status.
func (r *mongoSessionLogRepository) GetByDate(ctx context.Context, userID, date string) ([]domain.SessionLog, error) {
	return r.find(ctx, bson.M{"userId": userID, "date": date})
}

// GetByDateRange returns all sessions with from <= date <= to, any status.
// Date keys are canonical YYYY-MM-DD so lexicographic comparison is safe.
func (r *mongoSessionLogRepository) GetByDateRange(ctx context.Context, userID, from, to string) ([]domain.SessionLog, error) {
	return r.find(ctx, bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	})
}

func (r *mongoSessionLogRepository) find(ctx context.Context, filter bson.M) ([]domain.SessionLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.SessionLog
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureSessionLogIndexes creates necessary indexes for the session_logs collection.
func EnsureSessionLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
