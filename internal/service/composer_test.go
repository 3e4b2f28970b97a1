package service

import (
	"testing"
	"time"

	"fitsage/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func mustParse(date string) time.Time {
	t, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return t
}

func weeklyFixture() *domain.WeeklyData {
	trained := []bool{true, false, true, true, false}
	checkins := make([]domain.DailyCheckin, 5)
	for i := range checkins {
		checkins[i] = domain.DailyCheckin{
			UserID:   "u1",
			Date:     domain.WeekDates(mustParse("2024-01-01"), 5)[i],
			WeightKg: floatPtr(80.0),
			Trained:  trained[i],
		}
	}
	return &domain.WeeklyData{
		UserID:    "u1",
		WeekStart: "2024-01-01",
		Profile: domain.Profile{
			Goal:       domain.GoalLoseWeight,
			Experience: domain.ExperienceBeginner,
			Intensity:  domain.IntensityMedium,
			Goals: domain.Goals{
				CalorieLimit:    2000,
				WorkoutsPerWeek: 4,
				CardioPerWeek:   2,
			},
			Coach: domain.Coach{Name: "Marcus"},
		},
		DailyCheckins: checkins,
		Sessions: []domain.SessionLog{
			{Type: domain.SessionWorkout, Status: domain.SessionCompleted, Date: "2024-01-01"},
			{Type: domain.SessionWorkout, Status: domain.SessionCompleted, Date: "2024-01-03"},
			{Type: domain.SessionWorkout, Status: domain.SessionCompleted, Date: "2024-01-04"},
			{Type: domain.SessionWorkout, Status: domain.SessionSkipped, Date: "2024-01-05"},
			{Type: domain.SessionCardio, Status: domain.SessionCompleted, Date: "2024-01-02"},
		},
		FoodDiaryDays: []domain.FoodDiaryDay{
			{Date: "2024-01-01", TotalCalories: 1900, TotalProtein: 150},
			{Date: "2024-01-02", TotalCalories: 2100, TotalProtein: 130},
		},
	}
}

func TestComposeWeeklyPromptAdherence(t *testing.T) {
	data := weeklyFixture()
	prompt := ComposeWeeklyPrompt(data, "Marcus", "", nil)

	// 3 trained days over 5 logged check-ins, not over the 7-day window.
	assert.Contains(t, prompt, "Trained: 3/5 days (60%)")
	assert.Contains(t, prompt, "Days logged: 5 of 7")
	// Skipped sessions do not count as completed.
	assert.Contains(t, prompt, "3 of 4 sessions (75%)")
	assert.Contains(t, prompt, "1 of 2 sessions (50%)")
}

func TestComposeWeeklyPromptStructure(t *testing.T) {
	data := weeklyFixture()
	prompt := ComposeWeeklyPrompt(data, "Marcus", "", nil)

	assert.Contains(t, prompt, "You are Marcus, a personal fitness and nutrition coach.")
	// Output contract, including all seven body sections.
	for _, section := range []string{"FOOD", "WORKOUTS", "CARDIO", "HYDRATION", "DAILY CHECK-INS", "WEEKLY CHECK-IN", "THE BIG PICTURE"} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, `{"subject": "...", "body": "..."}`)
	// No persona and no previous message in this fixture.
	assert.NotContains(t, prompt, "PERSONA:")
	assert.NotContains(t, prompt, "CONTINUITY:")
}

func TestComposeWeeklyPromptContinuity(t *testing.T) {
	data := weeklyFixture()
	data.PreviousMessage = &domain.CoachingMessage{
		Subject: "Back on track",
		Body:    "You committed to four workouts.",
	}
	prompt := ComposeWeeklyPrompt(data, "Marcus", "", nil)

	assert.Contains(t, prompt, "CONTINUITY:")
	assert.Contains(t, prompt, "Subject: Back on track")
	assert.Contains(t, prompt, "You committed to four workouts.")
}

func TestComposeWeeklyPromptPersona(t *testing.T) {
	data := weeklyFixture()
	prompt := ComposeWeeklyPrompt(data, "Rocky", "A 1970s boxing trainer from Philadelphia", nil)

	assert.Contains(t, prompt, "You are Rocky,")
	assert.Contains(t, prompt, "PERSONA:")
	assert.Contains(t, prompt, "A 1970s boxing trainer from Philadelphia")
}

func TestToneInstructionOverride(t *testing.T) {
	data := weeklyFixture()
	data.Profile.Intensity = domain.IntensityExtreme
	overrides := map[domain.CoachIntensity]string{
		domain.IntensityExtreme: "TONE: Shout everything in capital letters.",
	}

	prompt := ComposeWeeklyPrompt(data, "Marcus", "", overrides)

	require.Contains(t, prompt, "TONE: Shout everything in capital letters.")
	// The override replaces the canned text entirely.
	assert.NotContains(t, prompt, "drill-sergeant")
}

func TestToneInstructionOverrideOtherLevelIgnored(t *testing.T) {
	overrides := map[domain.CoachIntensity]string{
		domain.IntensityHigh: "custom high text",
	}
	got := toneInstruction(domain.IntensityMedium, overrides)
	assert.Equal(t, intensityInstructions[domain.IntensityMedium], got)
}

func TestToneInstructionEmptyOverrideFallsBack(t *testing.T) {
	overrides := map[domain.CoachIntensity]string{
		domain.IntensityHigh: "",
	}
	got := toneInstruction(domain.IntensityHigh, overrides)
	assert.Equal(t, intensityInstructions[domain.IntensityHigh], got)
}

func TestComposeDailyPrompt(t *testing.T) {
	data := &domain.DailyMessageData{
		UserID:       "u1",
		WeekStart:    "2024-01-01",
		Date:         "2024-01-03",
		DaysIntoWeek: 3,
		Profile: domain.Profile{
			Goal:       domain.GoalGainStrength,
			Experience: domain.ExperienceAdvanced,
			Intensity:  domain.IntensityHigh,
			Goals:      domain.Goals{WorkoutsPerWeek: 4},
		},
		Progression: domain.GoalProgression{WorkoutProgress: 0.5},
		PrevWeekCheckin: &domain.WeeklyCheckin{
			NextWeekFocus: "hit every workout",
		},
	}

	prompt := ComposeDailyPrompt(data, "Dana", "", nil)

	assert.Contains(t, prompt, "day 3 of 7, 2024-01-01 to 2024-01-03")
	assert.Contains(t, prompt, "Workout goal progress: 50%")
	assert.Contains(t, prompt, "Cardio goal progress: 0% (or no goal set)")
	assert.Contains(t, prompt, `focus this week would be: "hit every workout"`)
	assert.Contains(t, prompt, "It is day 3 of 7")
	assert.NotContains(t, prompt, `{"subject"`)
}

func TestComposeWeeklyPromptDeterministic(t *testing.T) {
	data := weeklyFixture()
	first := ComposeWeeklyPrompt(data, "Marcus", "p", nil)
	second := ComposeWeeklyPrompt(data, "Marcus", "p", nil)
	require.Equal(t, first, second)
}
