package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical key format for all per-day records.
const DateLayout = "2006-01-02"

// DocID builds the deterministic document id for per-day and per-week records.
func DocID(userID, date string) string {
	return fmt.Sprintf("%s_%s", userID, date)
}

// ParseDate parses a canonical YYYY-MM-DD date key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// WeekStartOf returns the Monday of the week containing t, as a date key.
// Weeks run Monday through Sunday inclusive.
func WeekStartOf(t time.Time) string {
	// time.Weekday has Sunday == 0; shift so Monday == 0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DateLayout)
}

// WeekDates enumerates the n calendar dates starting at weekStart, ascending.
// The weekly window uses n=7; the daily window uses daysIntoWeek.
func WeekDates(weekStart time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, weekStart.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// IsMonday reports whether the date key denotes a Monday.
func IsMonday(date string) bool {
	t, err := ParseDate(date)
	return err == nil && t.Weekday() == time.Monday
}

// PrevWeekStart returns the Monday one week before weekStart.
func PrevWeekStart(weekStart string) string {
	t, err := ParseDate(weekStart)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -7).Format(DateLayout)
}

// WeeklyData is the raw, unsummarized bundle the weekly pipeline aggregates
// for one user and one Monday-started week. Constructed fresh per invocation,
// never persisted. Collections hold only the records that exist; missing
// dates are omitted, not null-padded. Slices are ordered by date ascending.
type WeeklyData struct {
	UserID          string
	WeekStart       string
	Profile         Profile
	WeeklyCheckin   *WeeklyCheckin // this week's, may be nil
	DailyCheckins   []DailyCheckin
	FoodDiaryDays   []FoodDiaryDay
	WaterLogs       []WaterLog
	Sessions        []SessionLog     // all statuses
	PreviousMessage *CoachingMessage // prior week's generated message, may be nil
}

// GoalProgression is the achieved-to-target ratio set for the elapsed part of
// a week. Ratios are 0 when the matching goal is 0 or unset, and are not
// clamped: over-achievement yields values above 1.
type GoalProgression struct {
	WorkoutProgress float64
	CardioProgress  float64
	CalorieProgress float64
	ProteinProgress float64
}

// DailyMessageData is the week-to-date bundle the daily pipeline aggregates,
// restricted to [weekStart, today]. The prior week's checkin (not this
// week's) provides short-term continuity context.
type DailyMessageData struct {
	UserID          string
	WeekStart       string
	Date            string // "today", the inclusive end of the window
	DaysIntoWeek    int    // 1..7
	Profile         Profile
	DailyCheckins   []DailyCheckin
	FoodDiaryDays   []FoodDiaryDay
	WaterLogs       []WaterLog
	Sessions        []SessionLog
	PrevWeekCheckin *WeeklyCheckin
	Progression     GoalProgression
}
