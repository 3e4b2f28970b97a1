package mongo

import (
	"context"
	"errors"
	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const coachingMessageCollectionName = "coaching_messages"

// mongoCoachingMessageRepository implements repository.CoachingMessageRepository.
type mongoCoachingMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachingMessageRepository creates a new instance of mongoCoachingMessageRepository.
func NewMongoCoachingMessageRepository(db *mongo.Database) repository.CoachingMessageRepository {
	return &mongoCoachingMessageRepository{
		collection: db.Collection(coachingMessageCollectionName),
	}
}

// Save persists a generated weekly message, keyed by userID_weekStart so a
// regenerated week overwrites the earlier message instead of duplicating it.
func (r *mongoCoachingMessageRepository) Save(ctx context.Context, message *domain.CoachingMessage) error {
	if message.UserID == "" || message.WeekStart == "" {
		return errors.New("user ID and week start are required")
	}

	message.ID = domain.DocID(message.UserID, message.WeekStart)
	if message.GeneratedAt.IsZero() {
		message.GeneratedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": message.ID}, message, opts)
	return err
}

func (r *mongoCoachingMessageRepository) GetByWeek(ctx context.Context, userID, weekStart string) (*domain.CoachingMessage, error) {
	var message domain.CoachingMessage
	err := r.collection.FindOne(ctx, bson.M{"_id": domain.DocID(userID, weekStart)}).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListByUser returns the most recent messages for a user, newest first.
func (r *mongoCoachingMessageRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.CoachingMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "weekStart", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.CoachingMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
