package service

import (
	"context"
	"time"

	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DailyAggregator collects the week-to-date records for the short daily
// nudge: the same per-date fan-out as the weekly variant, restricted to
// [weekStart, today], plus computed goal-progression ratios and the prior
// week's check-in for continuity.
type DailyAggregator interface {
	// CollectDailyMessageData aggregates [weekStart, date]. An empty date
	// means today (UTC).
	CollectDailyMessageData(ctx context.Context, userID, date string) (*domain.DailyMessageData, error)
}

type dailyAggregator struct {
	recordFetcher
}

// NewDailyAggregator creates a new instance of dailyAggregator.
func NewDailyAggregator(
	userRepo repository.UserRepository,
	checkinRepo repository.DailyCheckinRepository,
	foodRepo repository.FoodDiaryRepository,
	waterRepo repository.WaterLogRepository,
	sessionRepo repository.SessionLogRepository,
	weeklyRepo repository.WeeklyCheckinRepository,
	logger *zap.Logger,
) DailyAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dailyAggregator{
		recordFetcher: recordFetcher{
			userRepo:    userRepo,
			checkinRepo: checkinRepo,
			foodRepo:    foodRepo,
			waterRepo:   waterRepo,
			sessionRepo: sessionRepo,
			weeklyRepo:  weeklyRepo,
			logger:      logger,
		},
	}
}

func (a *dailyAggregator) CollectDailyMessageData(ctx context.Context, userID, date string) (*domain.DailyMessageData, error) {
	if date == "" {
		date = time.Now().UTC().Format(domain.DateLayout)
	}
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	profile, err := a.fetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart := domain.WeekStartOf(day)
	start, _ := domain.ParseDate(weekStart)
	daysIntoWeek := int(day.Sub(start).Hours()/24) + 1
	if daysIntoWeek < 1 || daysIntoWeek > 7 {
		return nil, ErrDateBeforeWeek
	}

	dates := domain.WeekDates(start, daysIntoWeek)

	checkins := make([]*domain.DailyCheckin, len(dates))
	foodDays := make([]*domain.FoodDiaryDay, len(dates))
	waterLogs := make([]*domain.WaterLog, len(dates))
	var sessions []domain.SessionLog
	var prevCheckin *domain.WeeklyCheckin

	var g errgroup.Group
	for i, d := range dates {
		g.Go(func() error {
			checkins[i] = a.lookupCheckin(ctx, userID, d)
			return nil
		})
		g.Go(func() error {
			foodDays[i] = a.lookupFoodDay(ctx, userID, d)
			return nil
		})
		g.Go(func() error {
			waterLogs[i] = a.lookupWaterLog(ctx, userID, d)
			return nil
		})
	}
	g.Go(func() error {
		s, err := a.sessionRepo.GetByDateRange(ctx, userID, weekStart, date)
		if err != nil {
			a.logDegraded("session_logs", weekStart, err)
			return nil
		}
		sessions = s
		return nil
	})
	g.Go(func() error {
		// The prior week's reflection, not the current week's: mid-week
		// there is nothing to reflect on yet.
		prevCheckin = a.lookupWeeklyCheckin(ctx, userID, domain.PrevWeekStart(weekStart))
		return nil
	})

	_ = g.Wait()

	data := &domain.DailyMessageData{
		UserID:          userID,
		WeekStart:       weekStart,
		Date:            date,
		DaysIntoWeek:    daysIntoWeek,
		Profile:         profile,
		Sessions:        sessions,
		PrevWeekCheckin: prevCheckin,
	}
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

	data.Progression = computeProgression(profile.Goals, data.Sessions, data.FoodDiaryDays)

	return data, nil
}

// computeProgression derives achieved-to-target ratios for the elapsed part
// of the week. A zero/unset goal yields a ratio of 0, never a division by
// zero. Food averages divide by the number of diary entries present, not by
// days elapsed: a day with no diary is excluded, not counted as zero intake.
// Ratios are not clamped, so over-achievement reads above 1.
func computeProgression(goals domain.Goals, sessions []domain.SessionLog, foodDays []domain.FoodDiaryDay) domain.GoalProgression {
	var p domain.GoalProgression

	var workoutsDone, cardioDone int
	for _, s := range sessions {
		if s.Status != domain.SessionCompleted {
			continue
		}
		switch s.Type {
		case domain.SessionWorkout:
			workoutsDone++
		case domain.SessionCardio:
			cardioDone++
		}
	}
	if goals.WorkoutsPerWeek > 0 {
		p.WorkoutProgress = float64(workoutsDone) / float64(goals.WorkoutsPerWeek)
	}
	if goals.CardioPerWeek > 0 {
		p.CardioProgress = float64(cardioDone) / float64(goals.CardioPerWeek)
	}

	if len(foodDays) > 0 {
		var calories, protein float64
		for _, d := range foodDays {
			calories += d.TotalCalories
			protein += d.TotalProtein
		}
		avgCalories := calories / float64(len(foodDays))
		avgProtein := protein / float64(len(foodDays))
		if goals.CalorieLimit > 0 {
			p.CalorieProgress = avgCalories / goals.CalorieLimit
		}
		if goals.ProteinTarget > 0 {
			p.ProteinProgress = avgProtein / goals.ProteinTarget
		}
	}

	return p
}
