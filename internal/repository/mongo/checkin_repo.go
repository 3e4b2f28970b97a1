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

const dailyCheckinCollectionName = "daily_checkins"

// mongoDailyCheckinRepository implements repository.DailyCheckinRepository.
// Documents use the deterministic id userID_date, one per user per day.
type mongoDailyCheckinRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyCheckinRepository creates a new instance of mongoDailyCheckinRepository.
func NewMongoDailyCheckinRepository(db *mongo.Database) repository.DailyCheckinRepository {
	return &mongoDailyCheckinRepository{
		collection: db.Collection(dailyCheckinCollectionName),
	}
}

// Upsert writes the check-in for its date, replacing any prior submission.
func (r *mongoDailyCheckinRepository) Upsert(ctx context.Context, checkin *domain.DailyCheckin) error {
	if checkin.UserID == "" || checkin.Date == "" {
		return errors.New("user ID and date are required")
	}

	checkin.ID = domain.DocID(checkin.UserID, checkin.Date)
	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": checkin.ID}, checkin, opts)
	return err
}

// GetByDate is the point lookup the aggregators fan out over.
func (r *mongoDailyCheckinRepository) GetByDate(ctx context.Context, userID, date string) (*domain.DailyCheckin, error) {
	var checkin domain.DailyCheckin
	err := r.collection.FindOne(ctx, bson.M{"_id": domain.DocID(userID, date)}).Decode(&checkin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkin, nil
}

// EnsureDailyCheckinIndexes creates necessary indexes for the daily_checkins collection.
func EnsureDailyCheckinIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
