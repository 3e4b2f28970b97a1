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

const foodDiaryCollectionName = "food_diary_days"

// mongoFoodDiaryRepository implements repository.FoodDiaryRepository over the
// per-day food diary rollups.
type mongoFoodDiaryRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodDiaryRepository creates a new instance of mongoFoodDiaryRepository.
func NewMongoFoodDiaryRepository(db *mongo.Database) repository.FoodDiaryRepository {
	return &mongoFoodDiaryRepository{
		collection: db.Collection(foodDiaryCollectionName),
	}
}

// Upsert writes the day's totals, replacing any prior rollup for that date.
func (r *mongoFoodDiaryRepository) Upsert(ctx context.Context, day *domain.FoodDiaryDay) error {
	if day.UserID == "" || day.Date == "" {
		return errors.New("user ID and date are required")
	}

	day.ID = domain.DocID(day.UserID, day.Date)
	if day.CreatedAt.IsZero() {
		day.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": day.ID}, day, opts)
	return err
}

func (r *mongoFoodDiaryRepository) GetByDate(ctx context.Context, userID, date string) (*domain.FoodDiaryDay, error) {
	var day domain.FoodDiaryDay
	err := r.collection.FindOne(ctx, bson.M{"_id": domain.DocID(userID, date)}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}
