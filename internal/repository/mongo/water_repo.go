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

const waterLogCollectionName = "water_logs"

// mongoWaterLogRepository implements repository.WaterLogRepository.
type mongoWaterLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWaterLogRepository creates a new instance of mongoWaterLogRepository.
func NewMongoWaterLogRepository(db *mongo.Database) repository.WaterLogRepository {
	return &mongoWaterLogRepository{
		collection: db.Collection(waterLogCollectionName),
	}
}

// Upsert writes the day's water total, replacing any prior value.
func (r *mongoWaterLogRepository) Upsert(ctx context.Context, log *domain.WaterLog) error {
	if log.UserID == "" || log.Date == "" {
		return errors.New("user ID and date are required")
	}

	log.ID = domain.DocID(log.UserID, log.Date)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": log.ID}, log, opts)
	return err
}

func (r *mongoWaterLogRepository) GetByDate(ctx context.Context, userID, date string) (*domain.WaterLog, error) {
	var log domain.WaterLog
	err := r.collection.FindOne(ctx, bson.M{"_id": domain.DocID(userID, date)}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}
