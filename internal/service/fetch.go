package service

import (
	"context"
	"errors"
	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// recordFetcher holds the record-store lookups shared by the weekly and daily
// aggregators. Per-date lookups never fail: a missing record and a broken
// fetch both come back as nil, so one bad date cannot abort an aggregation.
type recordFetcher struct {
	userRepo    repository.UserRepository
	checkinRepo repository.DailyCheckinRepository
	foodRepo    repository.FoodDiaryRepository
	waterRepo   repository.WaterLogRepository
	sessionRepo repository.SessionLogRepository
	weeklyRepo  repository.WeeklyCheckinRepository
	logger      *zap.Logger
}

func (f *recordFetcher) fetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.Profile{}, ErrUserNotFound
	}
	user, err := f.userRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrUserNotFound
		}
		return domain.Profile{}, err
	}
	return user.Profile, nil
}

func (f *recordFetcher) lookupCheckin(ctx context.Context, userID, date string) *domain.DailyCheckin {
	c, err := f.checkinRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			f.logDegraded("daily_checkins", date, err)
		}
		return nil
	}
	return c
}

func (f *recordFetcher) lookupFoodDay(ctx context.Context, userID, date string) *domain.FoodDiaryDay {
	d, err := f.foodRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			f.logDegraded("food_diary_days", date, err)
		}
		return nil
	}
	return d
}

func (f *recordFetcher) lookupWaterLog(ctx context.Context, userID, date string) *domain.WaterLog {
	w, err := f.waterRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			f.logDegraded("water_logs", date, err)
		}
		return nil
	}
	return w
}

func (f *recordFetcher) lookupWeeklyCheckin(ctx context.Context, userID, weekStart string) *domain.WeeklyCheckin {
	w, err := f.weeklyRepo.GetByWeek(ctx, userID, weekStart)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			f.logDegraded("weekly_checkins", weekStart, err)
		}
		return nil
	}
	return w
}

// logDegraded records an infrastructure failure on a single fetch. The fetch
// is treated like a missing record; the aggregation carries on without it.
func (f *recordFetcher) logDegraded(collection, key string, err error) {
	f.logger.Warn("record fetch degraded to missing",
		zap.String("collection", collection),
		zap.String("key", key),
		zap.Error(err))
}
