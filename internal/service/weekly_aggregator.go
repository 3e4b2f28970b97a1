package service

import (
	"context"
	"errors"
	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNotMonday      = errors.New("week start date must be a Monday")
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrDateBeforeWeek = errors.New("date is before the week start")
)

// WeeklyAggregator gathers a user's scattered records for one Monday-started
// week into a single WeeklyData bundle. It summarizes nothing; it only
// collects. A missing record for a date is a normal outcome and is omitted
// from the result. A failed fetch for one date/collection degrades the same
// way: the aggregation always completes.
type WeeklyAggregator interface {
	CollectWeeklyData(ctx context.Context, userID, weekStart string) (*domain.WeeklyData, error)
}

type weeklyAggregator struct {
	recordFetcher
	messageRepo repository.CoachingMessageRepository
}

// NewWeeklyAggregator creates a new instance of weeklyAggregator.
func NewWeeklyAggregator(
	userRepo repository.UserRepository,
	checkinRepo repository.DailyCheckinRepository,
	foodRepo repository.FoodDiaryRepository,
	waterRepo repository.WaterLogRepository,
	sessionRepo repository.SessionLogRepository,
	weeklyRepo repository.WeeklyCheckinRepository,
	messageRepo repository.CoachingMessageRepository,
	logger *zap.Logger,
) WeeklyAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &weeklyAggregator{
		recordFetcher: recordFetcher{
			userRepo:    userRepo,
			checkinRepo: checkinRepo,
			foodRepo:    foodRepo,
			waterRepo:   waterRepo,
			sessionRepo: sessionRepo,
			weeklyRepo:  weeklyRepo,
			logger:      logger,
		},
		messageRepo: messageRepo,
	}
}

// CollectWeeklyData fans out point lookups for the 7 calendar dates in
// [weekStart, weekStart+6] across the three per-day collections, plus the
// session range query and the week-level documents, joins on an all-complete
// barrier, and merges the present results in ascending date order.
func (a *weeklyAggregator) CollectWeeklyData(ctx context.Context, userID, weekStart string) (*domain.WeeklyData, error) {
	start, err := domain.ParseDate(weekStart)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !domain.IsMonday(weekStart) {
		return nil, ErrNotMonday
	}

	profile, err := a.fetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates := domain.WeekDates(start, 7)
	lastDate := dates[len(dates)-1]

	// One result slot per date per collection. Slots are written by exactly
	// one goroutine each and read only after the barrier, so no locking.
	checkins := make([]*domain.DailyCheckin, len(dates))
	foodDays := make([]*domain.FoodDiaryDay, len(dates))
	waterLogs := make([]*domain.WaterLog, len(dates))
	var weekly *domain.WeeklyCheckin
	var sessions []domain.SessionLog
	var prevMessage *domain.CoachingMessage

	var g errgroup.Group
	for i, date := range dates {
		g.Go(func() error {
			checkins[i] = a.lookupCheckin(ctx, userID, date)
			return nil
		})
		g.Go(func() error {
			foodDays[i] = a.lookupFoodDay(ctx, userID, date)
			return nil
		})
		g.Go(func() error {
			waterLogs[i] = a.lookupWaterLog(ctx, userID, date)
			return nil
		})
	}
	g.Go(func() error {
		// The weekly variant includes sessions of every status; the prompt
		// distinguishes completed from planned itself.
		s, err := a.sessionRepo.GetByDateRange(ctx, userID, weekStart, lastDate)
		if err != nil {
			a.logDegraded("session_logs", weekStart, err)
			return nil
		}
		sessions = s
		return nil
	})
	g.Go(func() error {
		weekly = a.lookupWeeklyCheckin(ctx, userID, weekStart)
		return nil
	})
	g.Go(func() error {
		m, err := a.messageRepo.GetByWeek(ctx, userID, domain.PrevWeekStart(weekStart))
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				a.logDegraded("coaching_messages", weekStart, err)
			}
			return nil
		}
		prevMessage = m
		return nil
	})

	// Every task returns nil; Wait is purely the all-complete barrier.
	_ = g.Wait()

	data := &domain.WeeklyData{
		UserID:          userID,
		WeekStart:       weekStart,
		Profile:         profile,
		WeeklyCheckin:   weekly,
		Sessions:        sessions,
		PreviousMessage: prevMessage,
	}
	// Merge only the present results, preserving chronological order.
	for _, c := range checkins {
		if c != nil {
			data.DailyCheckins = append(data.DailyCheckins, *c)
		}
	}
	for _, f := range foodDays {
		if f != nil {
			data.FoodDiaryDays = append(data.FoodDiaryDays, *f)
		}
	}
	for _, w := range waterLogs {
		if w != nil {
			data.WaterLogs = append(data.WaterLogs, *w)
		}
	}

	return data, nil
}
