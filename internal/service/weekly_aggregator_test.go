package service

import (
	"context"
	"errors"
	"testing"

	"fitsage/coach-app/internal/domain"
)

func testProfile() domain.Profile {
	return domain.Profile{
		Goal:       domain.GoalLoseWeight,
		Experience: domain.ExperienceIntermediate,
		Intensity:  domain.IntensityMedium,
		Goals:      domain.Goals{CalorieLimit: 2000, WorkoutsPerWeek: 4},
		Coach:      domain.Coach{Name: "Marcus"},
	}
}

func newWeeklyAggregatorForTest(
	userRepo *fakeUserRepo,
	checkinRepo *fakeCheckinRepo,
	foodRepo *fakeFoodRepo,
	waterRepo *fakeWaterRepo,
	sessionRepo *fakeSessionRepo,
	weeklyRepo *fakeWeeklyRepo,
	messageRepo *fakeMessageRepo,
) WeeklyAggregator {
	return NewWeeklyAggregator(userRepo, checkinRepo, foodRepo, waterRepo, sessionRepo, weeklyRepo, messageRepo, nil)
}

func TestCollectWeeklyDataMergesPresentRecordsInOrder(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())

	checkinRepo := &fakeCheckinRepo{byDate: map[string]*domain.DailyCheckin{
		"2024-01-03": {UserID: userID, Date: "2024-01-03"},
		"2024-01-01": {UserID: userID, Date: "2024-01-01"},
		"2024-01-05": {UserID: userID, Date: "2024-01-05"},
	}}
	foodRepo := &fakeFoodRepo{byDate: map[string]*domain.FoodDiaryDay{
		"2024-01-02": {UserID: userID, Date: "2024-01-02", TotalCalories: 1800},
	}}
	waterRepo := &fakeWaterRepo{}
	sessionRepo := &fakeSessionRepo{sessions: []domain.SessionLog{
		{UserID: userID, Date: "2023-12-31", Type: domain.SessionWorkout, Status: domain.SessionCompleted},
		{UserID: userID, Date: "2024-01-02", Type: domain.SessionWorkout, Status: domain.SessionCompleted},
		{UserID: userID, Date: "2024-01-07", Type: domain.SessionCardio, Status: domain.SessionPlanned},
		{UserID: userID, Date: "2024-01-08", Type: domain.SessionWorkout, Status: domain.SessionCompleted},
	}}

	agg := newWeeklyAggregatorForTest(userRepo, checkinRepo, foodRepo, waterRepo, sessionRepo, &fakeWeeklyRepo{}, &fakeMessageRepo{})

	data, err := agg.CollectWeeklyData(context.Background(), userID, "2024-01-01")
	if err != nil {
		t.Fatalf("CollectWeeklyData returned error: %v", err)
	}

	// Only the dates with records, ascending, no nil padding.
	wantDates := []string{"2024-01-01", "2024-01-03", "2024-01-05"}
	if len(data.DailyCheckins) != len(wantDates) {
		t.Fatalf("got %d check-ins, want %d", len(data.DailyCheckins), len(wantDates))
	}
	for i, want := range wantDates {
		if data.DailyCheckins[i].Date != want {
			t.Errorf("checkin[%d].Date = %s, want %s", i, data.DailyCheckins[i].Date, want)
		}
	}

	if len(data.FoodDiaryDays) != 1 || data.FoodDiaryDays[0].Date != "2024-01-02" {
		t.Errorf("FoodDiaryDays = %+v, want single 2024-01-02 entry", data.FoodDiaryDays)
	}
	if len(data.WaterLogs) != 0 {
		t.Errorf("WaterLogs = %+v, want empty", data.WaterLogs)
	}

	// Sessions outside [weekStart, weekStart+6] are excluded; all statuses
	// inside the window are kept.
	if len(data.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2: %+v", len(data.Sessions), data.Sessions)
	}
	for _, s := range data.Sessions {
		if s.Date < "2024-01-01" || s.Date > "2024-01-07" {
			t.Errorf("session outside week window: %s", s.Date)
		}
	}

	if data.WeeklyCheckin != nil {
		t.Error("WeeklyCheckin should be nil when none was submitted")
	}
	if data.PreviousMessage != nil {
		t.Error("PreviousMessage should be nil when no prior message exists")
	}
	if data.Profile.Coach.Name != "Marcus" {
		t.Errorf("Profile.Coach.Name = %q, want Marcus", data.Profile.Coach.Name)
	}
}

func TestCollectWeeklyDataTransportErrorDegradesToMissing(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())

	checkinRepo := &fakeCheckinRepo{
		byDate: map[string]*domain.DailyCheckin{
			"2024-01-01": {UserID: userID, Date: "2024-01-01"},
			"2024-01-02": {UserID: userID, Date: "2024-01-02"},
			"2024-01-03": {UserID: userID, Date: "2024-01-03"},
		},
		failOn: map[string]bool{"2024-01-02": true},
	}

	agg := newWeeklyAggregatorForTest(userRepo, checkinRepo, &fakeFoodRepo{}, &fakeWaterRepo{}, &fakeSessionRepo{}, &fakeWeeklyRepo{}, &fakeMessageRepo{})

	data, err := agg.CollectWeeklyData(context.Background(), userID, "2024-01-01")
	if err != nil {
		t.Fatalf("a single failed fetch must not abort the aggregation: %v", err)
	}

	wantDates := []string{"2024-01-01", "2024-01-03"}
	if len(data.DailyCheckins) != len(wantDates) {
		t.Fatalf("got %d check-ins, want %d", len(data.DailyCheckins), len(wantDates))
	}
	for i, want := range wantDates {
		if data.DailyCheckins[i].Date != want {
			t.Errorf("checkin[%d].Date = %s, want %s", i, data.DailyCheckins[i].Date, want)
		}
	}
}

func TestCollectWeeklyDataSessionQueryFailureDegradesToEmpty(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	sessionRepo := &fakeSessionRepo{err: errTransport}

	agg := newWeeklyAggregatorForTest(userRepo, &fakeCheckinRepo{}, &fakeFoodRepo{}, &fakeWaterRepo{}, sessionRepo, &fakeWeeklyRepo{}, &fakeMessageRepo{})

	data, err := agg.CollectWeeklyData(context.Background(), userID, "2024-01-01")
	if err != nil {
		t.Fatalf("CollectWeeklyData returned error: %v", err)
	}
	if len(data.Sessions) != 0 {
		t.Errorf("Sessions = %+v, want empty after degraded range query", data.Sessions)
	}
}

func TestCollectWeeklyDataIncludesPreviousMessage(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	messageRepo := &fakeMessageRepo{byWeek: map[string]*domain.CoachingMessage{
		"2024-01-01": {UserID: userID, WeekStart: "2024-01-01", Subject: "Week one"},
	}}

	agg := newWeeklyAggregatorForTest(userRepo, &fakeCheckinRepo{}, &fakeFoodRepo{}, &fakeWaterRepo{}, &fakeSessionRepo{}, &fakeWeeklyRepo{}, messageRepo)

	data, err := agg.CollectWeeklyData(context.Background(), userID, "2024-01-08")
	if err != nil {
		t.Fatalf("CollectWeeklyData returned error: %v", err)
	}
	if data.PreviousMessage == nil || data.PreviousMessage.Subject != "Week one" {
		t.Errorf("PreviousMessage = %+v, want prior week's message", data.PreviousMessage)
	}
}

func TestCollectWeeklyDataValidation(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	agg := newWeeklyAggregatorForTest(userRepo, &fakeCheckinRepo{}, &fakeFoodRepo{}, &fakeWaterRepo{}, &fakeSessionRepo{}, &fakeWeeklyRepo{}, &fakeMessageRepo{})

	tests := []struct {
		name      string
		userID    string
		weekStart string
		wantErr   error
	}{
		{"not a monday", userID, "2024-01-02", ErrNotMonday},
		{"malformed date", userID, "01/01/2024", ErrInvalidDate},
		{"empty date", userID, "", ErrInvalidDate},
		{"unknown user", "000000000000000000000000", "2024-01-01", ErrUserNotFound},
		{"malformed user id", "not-hex", "2024-01-01", ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agg.CollectWeeklyData(context.Background(), tt.userID, tt.weekStart)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
