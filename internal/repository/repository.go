package repository

import (
	"context"
	"fitsage/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. ErrNotFound is a distinguishable
// non-error outcome for the aggregation pipeline: a missing per-date record
// is expected and must never abort an aggregation.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts
// and their embedded coaching profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.Profile) error
}

// DailyCheckinRepository accesses the daily_checkins collection.
// GetByDate is a point lookup on the deterministic doc id userID_date.
type DailyCheckinRepository interface {
	Upsert(ctx context.Context, checkin *domain.DailyCheckin) error
	GetByDate(ctx context.Context, userID, date string) (*domain.DailyCheckin, error)
}

// FoodDiaryRepository accesses the per-day food diary rollups.
type FoodDiaryRepository interface {
	Upsert(ctx context.Context, day *domain.FoodDiaryDay) error
	GetByDate(ctx context.Context, userID, date string) (*domain.FoodDiaryDay, error)
}

// WaterLogRepository accesses the per-day water totals.
type WaterLogRepository interface {
	Upsert(ctx context.Context, log *domain.WaterLog) error
	GetByDate(ctx context.Context, userID, date string) (*domain.WaterLog, error)
}

// SessionLogRepository accesses workout/cardio session logs. Sessions are
// zero-or-more per date, so the aggregators use a filtered date query instead
// of a point lookup.
type SessionLogRepository interface {
	Create(ctx context.Context, session *domain.SessionLog) (primitive.ObjectID, error)
	GetByDate(ctx context.Context, userID, date string) ([]domain.SessionLog, error)
	GetByDateRange(ctx context.Context, userID, from, to string) ([]domain.SessionLog, error)
}

// WeeklyCheckinRepository accesses weekly reflections, keyed by week start.
type WeeklyCheckinRepository interface {
	Upsert(ctx context.Context, checkin *domain.WeeklyCheckin) error
	GetByWeek(ctx context.Context, userID, weekStart string) (*domain.WeeklyCheckin, error)
}

// CoachingMessageRepository persists generated weekly messages and serves the
// prior week's message back to the pipeline for continuity.
type CoachingMessageRepository interface {
	Save(ctx context.Context, message *domain.CoachingMessage) error
	GetByWeek(ctx context.Context, userID, weekStart string) (*domain.CoachingMessage, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.CoachingMessage, error)
}
