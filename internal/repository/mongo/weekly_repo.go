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

const weeklyCheckinCollectionName = "weekly_checkins"

// mongoWeeklyCheckinRepository implements repository.WeeklyCheckinRepository.
// At most one check-in exists per user per week, keyed userID_weekStart.
type mongoWeeklyCheckinRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklyCheckinRepository creates a new instance of mongoWeeklyCheckinRepository.
func NewMongoWeeklyCheckinRepository(db *mongo.Database) repository.WeeklyCheckinRepository {
	return &mongoWeeklyCheckinRepository{
		collection: db.Collection(weeklyCheckinCollectionName),
	}
}

// Upsert writes the week's reflection, replacing any prior submission.
func (r *mongoWeeklyCheckinRepository) Upsert(ctx context.Context, checkin *domain.WeeklyCheckin) error {
	if checkin.UserID == "" || checkin.WeekStart == "" {
		return errors.New("user ID and week start are required")
	}

	checkin.ID = domain.DocID(checkin.UserID, checkin.WeekStart)
	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": checkin.ID}, checkin, opts)
	return err
}

func (r *mongoWeeklyCheckinRepository) GetByWeek(ctx context.Context, userID, weekStart string) (*domain.WeeklyCheckin, error) {
	var checkin domain.WeeklyCheckin
	err := r.collection.FindOne(ctx, bson.M{"_id": domain.DocID(userID, weekStart)}).Decode(&checkin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkin, nil
}
