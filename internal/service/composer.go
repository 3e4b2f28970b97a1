package service

import (
	"fmt"
	"math"
	"strings"

	"fitsage/coach-app/internal/domain"
)

// PromptComposer turns an aggregate and the coach configuration into the
// instruction text sent to the generation service. It is a pure string
// transform: no I/O, no clock, fully deterministic for a given input.

// ComposeWeeklyPrompt builds the weekly coaching prompt from a WeeklyData
// bundle. Section order is fixed: role, persona, continuity, data report,
// audience instruction, tone instruction, output contract.
func ComposeWeeklyPrompt(data *domain.WeeklyData, coachName, persona string, overrides map[domain.CoachIntensity]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a personal fitness and nutrition coach. Write this week's coaching message for your client based on the data report below.\n\n", coachName)

	if persona != "" {
		fmt.Fprintf(&b, personaInstruction+"\n\n", persona)
	}
	if data.PreviousMessage != nil {
		fmt.Fprintf(&b, continuityInstruction+"\n\n", data.PreviousMessage.Subject, data.PreviousMessage.Body)
	}

	writeProfileBlock(&b, data.Profile)
	writeWeeklyCheckinBlock(&b, data.WeeklyCheckin)
	writeCheckinSummary(&b, data.DailyCheckins, 7)
	writeFoodSummary(&b, data.FoodDiaryDays, data.Profile.Goals)
	writeSessionSummary(&b, data.Sessions, data.Profile.Goals)
	writeWaterSummary(&b, data.WaterLogs, data.Profile.Goals)

	b.WriteString(experienceInstructions[data.Profile.Experience])
	b.WriteString("\n\n")
	b.WriteString(toneInstruction(data.Profile.Intensity, overrides))
	b.WriteString("\n\n")
	b.WriteString(weeklyStructure)

	return b.String()
}

// ComposeDailyPrompt builds the condensed mid-week prompt from week-to-date
// data and the computed goal-progression ratios.
func ComposeDailyPrompt(data *domain.DailyMessageData, coachName, persona string, overrides map[domain.CoachIntensity]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a personal fitness and nutrition coach. Write a short daily check-in note for your client based on their week so far.\n\n", coachName)

	if persona != "" {
		fmt.Fprintf(&b, personaInstruction+"\n\n", persona)
	}

	writeProfileBlock(&b, data.Profile)

	fmt.Fprintf(&b, "=== WEEK SO FAR (day %d of 7, %s to %s) ===\n", data.DaysIntoWeek, data.WeekStart, data.Date)
	fmt.Fprintf(&b, "Workout goal progress: %s\n", ratio(data.Progression.WorkoutProgress))
	fmt.Fprintf(&b, "Cardio goal progress: %s\n", ratio(data.Progression.CardioProgress))
	fmt.Fprintf(&b, "Average calories vs limit: %s\n", ratio(data.Progression.CalorieProgress))
	fmt.Fprintf(&b, "Average protein vs target: %s\n\n", ratio(data.Progression.ProteinProgress))

	writeCheckinSummary(&b, data.DailyCheckins, data.DaysIntoWeek)
	writeFoodSummary(&b, data.FoodDiaryDays, data.Profile.Goals)
	writeWaterSummary(&b, data.WaterLogs, data.Profile.Goals)

	if data.PrevWeekCheckin != nil && data.PrevWeekCheckin.NextWeekFocus != "" {
		fmt.Fprintf(&b, "=== CARRIED OVER FROM LAST WEEK ===\nThe client said their focus this week would be: %q\n\n", data.PrevWeekCheckin.NextWeekFocus)
	}

	b.WriteString(experienceInstructions[data.Profile.Experience])
	b.WriteString("\n\n")
	b.WriteString(toneInstruction(data.Profile.Intensity, overrides))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, dailyStructure, data.DaysIntoWeek)

	return b.String()
}

// toneInstruction selects the canned intensity text, unless the coach
// carries a non-empty override for the active level. The override replaces
// the default entirely; the two are never merged.
func toneInstruction(level domain.CoachIntensity, overrides map[domain.CoachIntensity]string) string {
	if custom, ok := overrides[level]; ok && custom != "" {
		return custom
	}
	return intensityInstructions[level]
}

func writeProfileBlock(b *strings.Builder, p domain.Profile) {
	fmt.Fprintf(b, "=== CLIENT PROFILE ===\n")
	fmt.Fprintf(b, "Primary goal: %s\n", goalLabel(p.Goal))
	fmt.Fprintf(b, "Experience level: %s\n", p.Experience)
	g := p.Goals
	if g.CalorieLimit > 0 {
		fmt.Fprintf(b, "Daily calorie limit: %.0f kcal\n", g.CalorieLimit)
	}
	if g.ProteinTarget > 0 {
		fmt.Fprintf(b, "Daily protein target: %.0f g\n", g.ProteinTarget)
	}
	if g.CarbTarget > 0 {
		fmt.Fprintf(b, "Daily carb target: %.0f g\n", g.CarbTarget)
	}
	if g.FatTarget > 0 {
		fmt.Fprintf(b, "Daily fat target: %.0f g\n", g.FatTarget)
	}
	if g.WorkoutsPerWeek > 0 {
		fmt.Fprintf(b, "Workout sessions per week: %d\n", g.WorkoutsPerWeek)
	}
	if g.CardioPerWeek > 0 {
		fmt.Fprintf(b, "Cardio sessions per week: %d\n", g.CardioPerWeek)
	}
	if g.WaterLitersPerDay > 0 {
		fmt.Fprintf(b, "Water per day: %.1f L\n", g.WaterLitersPerDay)
	}
	if g.StartingWeightKg > 0 {
		fmt.Fprintf(b, "Starting weight: %.1f kg\n", g.StartingWeightKg)
	}
	b.WriteString("\n")
}

func writeWeeklyCheckinBlock(b *strings.Builder, w *domain.WeeklyCheckin) {
	if w == nil {
		fmt.Fprintf(b, "=== WEEKLY CHECK-IN ===\nThe client did not submit a weekly check-in.\n\n")
		return
	}
	fmt.Fprintf(b, "=== WEEKLY CHECK-IN ===\n")
	fmt.Fprintf(b, "Energy: %d/10, Motivation: %d/10, Stress: %d/10\n", w.EnergyLevel, w.MotivationLevel, w.StressLevel)
	if w.WentWell != "" {
		fmt.Fprintf(b, "What went well: %s\n", w.WentWell)
	}
	if w.CouldImprove != "" {
		fmt.Fprintf(b, "What could improve: %s\n", w.CouldImprove)
	}
	if w.NextWeekFocus != "" {
		fmt.Fprintf(b, "Focus for next week: %s\n", w.NextWeekFocus)
	}
	if w.AvgWeightKg > 0 {
		fmt.Fprintf(b, "Self-reported weekly averages: weight %.1f kg, sleep %.1f h, calories %.0f kcal\n", w.AvgWeightKg, w.AvgSleepHours, w.AvgDailyCalories)
	}
	b.WriteString("\n")
}

// writeCheckinSummary renders the daily check-ins with averages and
// adherence percentages. Adherence is relative to days actually logged,
// not to the full window: 3 trained days over 5 logged check-ins is 60%.
func writeCheckinSummary(b *strings.Builder, checkins []domain.DailyCheckin, windowDays int) {
	fmt.Fprintf(b, "=== DAILY CHECK-INS ===\n")
	logged := len(checkins)
	fmt.Fprintf(b, "Days logged: %d of %d\n", logged, windowDays)
	if logged == 0 {
		b.WriteString("No daily check-ins were submitted.\n\n")
		return
	}

	var weights, sleeps []float64
	var stepsSum, stepsN int
	var trained, cardio, calorieMet int
	for _, c := range checkins {
		if c.WeightKg != nil {
			weights = append(weights, *c.WeightKg)
		}
		if c.SleepHours != nil {
			sleeps = append(sleeps, *c.SleepHours)
		}
		if c.Steps != nil {
			stepsSum += *c.Steps
			stepsN++
		}
		if c.Trained {
			trained++
		}
		if c.DidCardio {
			cardio++
		}
		if c.CalorieGoalMet {
			calorieMet++
		}
	}

	if len(weights) > 0 {
		avg, min, max := stats(weights)
		fmt.Fprintf(b, "Weight: avg %.1f kg, min %.1f kg, max %.1f kg\n", avg, min, max)
	}
	if stepsN > 0 {
		fmt.Fprintf(b, "Steps: avg %d per day\n", stepsSum/stepsN)
	}
	if len(sleeps) > 0 {
		avg, min, max := stats(sleeps)
		fmt.Fprintf(b, "Sleep: avg %.1f h, min %.1f h, max %.1f h\n", avg, min, max)
	}
	fmt.Fprintf(b, "Trained: %s\n", adherence(trained, logged))
	fmt.Fprintf(b, "Did cardio: %s\n", adherence(cardio, logged))
	fmt.Fprintf(b, "Calorie goal met: %s\n\n", adherence(calorieMet, logged))
}

func writeFoodSummary(b *strings.Builder, days []domain.FoodDiaryDay, goals domain.Goals) {
	fmt.Fprintf(b, "=== FOOD DIARY ===\n")
	if len(days) == 0 {
		b.WriteString("No food diary entries this week.\n\n")
		return
	}

	var cal, protein, carbs, fat float64
	for _, d := range days {
		cal += d.TotalCalories
		protein += d.TotalProtein
		carbs += d.TotalCarbs
		fat += d.TotalFat
	}
	n := float64(len(days))
	fmt.Fprintf(b, "Days with diary entries: %d\n", len(days))
	fmt.Fprintf(b, "Average calories: %.0f kcal%s\n", cal/n, deviation(cal/n, goals.CalorieLimit, "kcal"))
	fmt.Fprintf(b, "Average protein: %.0f g%s\n", protein/n, deviation(protein/n, goals.ProteinTarget, "g"))
	fmt.Fprintf(b, "Average carbs: %.0f g%s\n", carbs/n, deviation(carbs/n, goals.CarbTarget, "g"))
	fmt.Fprintf(b, "Average fat: %.0f g%s\n\n", fat/n, deviation(fat/n, goals.FatTarget, "g"))
}

func writeSessionSummary(b *strings.Builder, sessions []domain.SessionLog, goals domain.Goals) {
	var workouts, cardio int
	for _, s := range sessions {
		if s.Status != domain.SessionCompleted {
			continue
		}
		switch s.Type {
		case domain.SessionWorkout:
			workouts++
		case domain.SessionCardio:
			cardio++
		}
	}

	fmt.Fprintf(b, "=== WORKOUTS ===\n")
	fmt.Fprintf(b, "Completed: %s\n\n", countVsGoal(workouts, goals.WorkoutsPerWeek))
	fmt.Fprintf(b, "=== CARDIO ===\n")
	fmt.Fprintf(b, "Completed: %s\n\n", countVsGoal(cardio, goals.CardioPerWeek))
}

func writeWaterSummary(b *strings.Builder, logs []domain.WaterLog, goals domain.Goals) {
	fmt.Fprintf(b, "=== WATER ===\n")
	if len(logs) == 0 {
		b.WriteString("No water logs this week.\n\n")
		return
	}
	var total int
	for _, l := range logs {
		total += l.TotalMl
	}
	avgLiters := float64(total) / float64(len(logs)) / 1000.0
	fmt.Fprintf(b, "Days logged: %d, average %.1f L per day%s\n\n", len(logs), avgLiters, deviation(avgLiters, goals.WaterLitersPerDay, "L"))
}

// --- formatting helpers ---

// adherence renders "matched/logged days (NN%)", rounded to the nearest
// whole percent.
func adherence(matched, logged int) string {
	pct := int(math.Round(float64(matched) / float64(logged) * 100))
	return fmt.Sprintf("%d/%d days (%d%%)", matched, logged, pct)
}

// countVsGoal renders completed-session counts against the weekly goal,
// percentage as count/goal*100.
func countVsGoal(count, goal int) string {
	if goal <= 0 {
		return fmt.Sprintf("%d sessions (no weekly goal set)", count)
	}
	pct := int(math.Round(float64(count) / float64(goal) * 100))
	return fmt.Sprintf("%d of %d sessions (%d%%)", count, goal, pct)
}

// deviation renders the signed percentage difference from a goal to one
// decimal place, or nothing when no goal is set.
func deviation(actual, goal float64, unit string) string {
	if goal <= 0 {
		return ""
	}
	pct := (actual - goal) / goal * 100
	return fmt.Sprintf(" (goal %.0f %s, %+.1f%%)", goal, unit, pct)
}

// ratio renders a goal-progression ratio as a percentage, "n/a" when the
// underlying goal is unset.
func ratio(r float64) string {
	if r == 0 {
		return "0% (or no goal set)"
	}
	return fmt.Sprintf("%.0f%%", r*100)
}

func stats(values []float64) (avg, min, max float64) {
	min, max = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(values)), min, max
}

func goalLabel(g domain.GoalType) string {
	switch g {
	case domain.GoalLoseWeight:
		return "lose weight"
	case domain.GoalGainWeight:
		return "gain weight"
	case domain.GoalGainStrength:
		return "gain strength"
	case domain.GoalMaintain:
		return "maintain"
	default:
		return string(g)
	}
}
